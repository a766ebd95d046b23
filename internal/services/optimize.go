package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// Optimize runs one full optimization pipeline: validate the raw input,
// build the per-request coordinate table, translate to the engine's request
// body, fetch the computed result and persist it. Each call owns its own
// coordinate table; nothing is shared between concurrent calls.
//
// cache may be nil. When present it short-circuits the engine round trip for
// byte-identical payloads; a fresh result record is persisted either way, so
// every optimize call still yields its own stored record. Cache failures are
// logged and ignored.
func Optimize(
	ctx context.Context,
	req OptimizeRequest,
	optimizer ports.Optimizer,
	results ports.ResultRepository,
	cache ports.ResultCache,
) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "services.Optimize")(&err)

	if len(req.Jobs) == 0 {
		return nil, &domain.ValidationError{Detail: "jobs must be a non-empty list"}
	}
	if len(req.Vehicles) == 0 {
		return nil, &domain.ValidationError{Detail: "vehicles must be a non-empty list"}
	}

	li, err := buildLocationIndex(req.Jobs, req.Vehicles)
	if err != nil {
		return nil, err
	}

	body, err := buildOptimizationRequest(req, li)
	if err != nil {
		return nil, err
	}

	raw, err := fetchResult(ctx, body, optimizer, cache)
	if err != nil {
		return nil, err
	}

	record, err := results.CreateResult(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("optimize: store result: %w", err)
	}

	return record, nil
}

// fetchResult obtains the engine payload for the built request body, going
// through the idempotency cache when one is configured.
func fetchResult(
	ctx context.Context,
	body *ports.OptimizationRequest,
	optimizer ports.Optimizer,
	cache ports.ResultCache,
) (json.RawMessage, error) {
	if cache == nil {
		return optimizer.Optimize(ctx, body)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("optimize: marshal request for cache key: %w", err)
	}
	key := cacheKey(payload)

	if raw, ok, err := cache.Get(ctx, key); err != nil {
		log.Printf("result cache read failed: %v", err)
	} else if ok {
		return raw, nil
	}

	raw, err := optimizer.Optimize(ctx, body)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(ctx, key, raw); err != nil {
		log.Printf("result cache write failed: %v", err)
	}

	return raw, nil
}

// cacheKey digests the exact payload bytes; two requests that serialize
// identically are interchangeable to the engine.
func cacheKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return "optimize:" + hex.EncodeToString(sum[:])
}
