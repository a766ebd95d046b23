package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

type mockOptimizer struct {
	calls int
	raw   json.RawMessage
	err   error
}

func (m *mockOptimizer) Optimize(ctx context.Context, req *ports.OptimizationRequest) (json.RawMessage, error) {
	m.calls++
	return m.raw, m.err
}

type mockResultRepo struct {
	created []json.RawMessage
	err     error
}

func (m *mockResultRepo) CreateResult(ctx context.Context, result json.RawMessage) (*domain.OptimizationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, result)
	return &domain.OptimizationResult{
		ID:        "r1",
		Result:    result,
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockResultRepo) ListResults(ctx context.Context) ([]*domain.OptimizationResult, error) {
	return nil, nil
}

type mockCache struct {
	store  map[string]json.RawMessage
	getErr error
	putErr error
	gets   int
	puts   int
}

func (m *mockCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	raw, ok := m.store[key]
	return raw, ok, nil
}

func (m *mockCache) Put(ctx context.Context, key string, result json.RawMessage) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	if m.store == nil {
		m.store = map[string]json.RawMessage{}
	}
	m.store[key] = result
	return nil
}

func validRequest() OptimizeRequest {
	return OptimizeRequest{
		Jobs:     []OptimizeJob{{ID: "j1", Location: coords(13.7563, 100.5018), ServiceTime: 300, TimeWindowEnd: 3600}},
		Vehicles: []OptimizeVehicle{{ID: "v1", Capacity: 100, ShiftEnd: 7200}},
	}
}

func TestOptimizeEmptyInputFailsBeforeEngineCall(t *testing.T) {
	engine := &mockOptimizer{raw: json.RawMessage(`{}`)}
	repo := &mockResultRepo{}

	cases := []OptimizeRequest{
		{Vehicles: validRequest().Vehicles},
		{Jobs: validRequest().Jobs},
	}

	for _, req := range cases {
		_, err := Optimize(context.Background(), req, engine, repo, nil)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	}

	if engine.calls != 0 {
		t.Fatalf("engine called %d times before validation, want 0", engine.calls)
	}
}

func TestOptimizePersistsAndReturnsRecord(t *testing.T) {
	raw := json.RawMessage(`{"status":"Ok","result":{"routes":[]}}`)
	engine := &mockOptimizer{raw: raw}
	repo := &mockResultRepo{}

	record, err := Optimize(context.Background(), validRequest(), engine, repo, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if engine.calls != 1 {
		t.Fatalf("engine calls = %d, want 1", engine.calls)
	}
	if len(repo.created) != 1 || string(repo.created[0]) != string(raw) {
		t.Fatalf("persisted = %v, want engine payload", repo.created)
	}
	if record.ID != "r1" || string(record.Result) != string(raw) {
		t.Fatalf("record = %+v", record)
	}
}

func TestOptimizeEngineErrorPropagates(t *testing.T) {
	wantErr := errors.New("engine down")
	engine := &mockOptimizer{err: wantErr}
	repo := &mockResultRepo{}

	_, err := Optimize(context.Background(), validRequest(), engine, repo, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should be persisted on engine failure, got %d rows", len(repo.created))
	}
}

func TestOptimizeStoreFailureSurfaces(t *testing.T) {
	engine := &mockOptimizer{raw: json.RawMessage(`{}`)}
	repo := &mockResultRepo{err: &domain.PersistenceError{Op: "insert result", Err: errors.New("connection refused")}}

	_, err := Optimize(context.Background(), validRequest(), engine, repo, nil)

	var perr *domain.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want PersistenceError", err)
	}
}

func TestOptimizeCacheHitSkipsEngine(t *testing.T) {
	raw := json.RawMessage(`{"status":"Ok","result":{"routes":[1]}}`)
	engine := &mockOptimizer{raw: raw}
	repo := &mockResultRepo{}
	cache := &mockCache{}

	if _, err := Optimize(context.Background(), validRequest(), engine, repo, cache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.calls != 1 || cache.puts != 1 {
		t.Fatalf("first call: engine=%d puts=%d, want 1/1", engine.calls, cache.puts)
	}

	// Identical payload: served from cache, engine untouched, still persisted.
	if _, err := Optimize(context.Background(), validRequest(), engine, repo, cache); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.calls != 1 {
		t.Fatalf("engine calls = %d after cache hit, want 1", engine.calls)
	}
	if len(repo.created) != 2 {
		t.Fatalf("persisted rows = %d, want 2 (one per call)", len(repo.created))
	}
}

func TestOptimizeCacheFailuresAreNonFatal(t *testing.T) {
	raw := json.RawMessage(`{}`)
	engine := &mockOptimizer{raw: raw}
	repo := &mockResultRepo{}
	cache := &mockCache{getErr: errors.New("redis gone"), putErr: errors.New("redis gone")}

	record, err := Optimize(context.Background(), validRequest(), engine, repo, cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || engine.calls != 1 {
		t.Fatalf("pipeline should proceed past cache failures (engine=%d)", engine.calls)
	}
}
