package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

const (
	submitPath = "/optimization/v2"
	resultPath = "/optimization/v2/result"

	defaultPollAttempts = 10
	defaultPollDelay    = 2000 * time.Millisecond
)

var (
	// ErrMissingJobID means the engine accepted the submission but its
	// response carried no job identifier. The submission is not retried.
	ErrMissingJobID = errors.New("engine returned no optimization job id")

	// ErrResultTimeout means the result never became ready within the
	// bounded polling budget. The whole optimize call may be retried later.
	ErrResultTimeout = errors.New("engine result polling exhausted")
)

// Client implements ports.Optimizer against the external optimization
// engine's asynchronous HTTP API: one submission call that yields a job id,
// then bounded fixed-delay polling of the result endpoint.
//
// The client keeps no mutable state per call and is safe for concurrent use.
type Client struct {
	session      *http.Client
	baseURL      string
	apiKey       string
	pollAttempts int
	pollDelay    time.Duration
	metrics      *metrics.Metrics
}

func NewClient(baseURL, apiKey string, m *metrics.Metrics) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("engine api key is empty")
	}
	if baseURL == "" {
		return nil, errors.New("engine base url is empty")
	}

	return &Client{
		session:      &http.Client{Timeout: 10 * time.Second},
		baseURL:      baseURL,
		apiKey:       apiKey,
		pollAttempts: defaultPollAttempts,
		pollDelay:    defaultPollDelay,
		metrics:      m,
	}, nil
}

// jobID tolerates the engine returning the identifier as either a JSON
// string or a number; it is opaque to us either way.
type jobID string

func (j *jobID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*j = jobID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*j = jobID(n.String())
		return nil
	}

	return fmt.Errorf("unexpected job id value %s", b)
}

type submitResponse struct {
	ID jobID `json:"id"`
}

type resultProbe struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

// Optimize submits the request body and polls the result endpoint until the
// engine reports readiness or the attempt budget runs out. It returns the
// raw response body of the successful poll, untouched.
func (c *Client) Optimize(ctx context.Context, req *ports.OptimizationRequest) (_ json.RawMessage, err error) {
	defer obs.Time(ctx, "engine.Optimize")(&err)

	id, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.poll(ctx, id)
}

func (c *Client) submit(ctx context.Context, body *ports.OptimizationRequest) (jobID, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal optimization request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, submitPath, nil, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("submit optimization: %w", err)
	}

	start := time.Now()
	resp, err := c.do(req)
	c.metrics.EngineRequestSeconds.WithLabelValues("submit").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("submit optimization: %w", err)
	}
	defer resp.Body.Close()

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}

	if decoded.ID == "" {
		return "", fmt.Errorf("submit optimization: %w", ErrMissingJobID)
	}

	return decoded.ID, nil
}

// poll is the Pending/Ready/Exhausted state machine: one result fetch per
// attempt, fixed delay between attempts, transport failures counted as a
// pending attempt rather than aborting the loop.
func (c *Client) poll(ctx context.Context, id jobID) (json.RawMessage, error) {
	for attempt := 1; attempt <= c.pollAttempts; attempt++ {
		raw, ready, err := c.fetchResult(ctx, id)
		if err != nil {
			log.Printf("engine poll failed: job_id=%s attempt=%d/%d err=%v", id, attempt, c.pollAttempts, err)
		} else if ready {
			c.metrics.EnginePollAttempts.Observe(float64(attempt))
			return raw, nil
		}

		if attempt == c.pollAttempts {
			break
		}

		timer := time.NewTimer(c.pollDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.metrics.EnginePollAttempts.Observe(float64(c.pollAttempts))
	return nil, fmt.Errorf("optimization job %s: %w", id, ErrResultTimeout)
}

// fetchResult performs a single result lookup. Ready means an HTTP 200 whose
// body reports a success status together with a non-empty result; anything
// else leaves the job pending.
func (c *Client) fetchResult(ctx context.Context, id jobID) (json.RawMessage, bool, error) {
	query := url.Values{}
	query.Set("id", string(id))

	req, err := c.newRequest(ctx, http.MethodGet, resultPath, query, nil)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	resp, err := c.session.Do(req)
	c.metrics.EngineRequestSeconds.WithLabelValues("result").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read result response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	var probe resultProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, false, fmt.Errorf("decode result response: %w", err)
	}

	if probe.Status != "Ok" || emptyResult(probe.Result) {
		return nil, false, nil
	}

	return json.RawMessage(body), true, nil
}

func emptyResult(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
