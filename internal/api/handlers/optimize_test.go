package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"route-optimizer-service/internal/adapters/engine"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/metrics"
	"route-optimizer-service/internal/ports"
)

type stubOptimizer struct {
	calls int
	raw   json.RawMessage
	err   error
}

func (s *stubOptimizer) Optimize(ctx context.Context, req *ports.OptimizationRequest) (json.RawMessage, error) {
	s.calls++
	return s.raw, s.err
}

type stubResultRepo struct {
	err error
}

func (s *stubResultRepo) CreateResult(ctx context.Context, result json.RawMessage) (*domain.OptimizationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.OptimizationResult{
		ID:        "11111111-2222-3333-4444-555555555555",
		Result:    result,
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubResultRepo) ListResults(ctx context.Context) ([]*domain.OptimizationResult, error) {
	return nil, nil
}

func newOptimizeHandler(opt *stubOptimizer, repo *stubResultRepo) *OptimizeHandler {
	return &OptimizeHandler{
		Optimizer: opt,
		Results:   repo,
		Metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
	}
}

func doOptimize(t *testing.T, h *OptimizeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var res errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return res
}

const validBody = `{
	"jobs": [{"id":"j1","latitude":13.7563,"longitude":100.5018,"service_time":300,"time_window_start":0,"time_window_end":3600}],
	"vehicles": [{"id":"v1","capacity":100,"shift_start":0,"shift_end":7200}]
}`

func TestOptimizeHandlerSuccess(t *testing.T) {
	opt := &stubOptimizer{raw: json.RawMessage(`{"status":"Ok","result":{"routes":[]}}`)}
	h := newOptimizeHandler(opt, &stubResultRepo{})

	rec := doOptimize(t, h, validBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s, want 200", rec.Code, rec.Body)
	}

	var res struct {
		ID        string          `json:"id"`
		Result    json.RawMessage `json:"result"`
		CreatedAt time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ID == "" || res.CreatedAt.IsZero() || len(res.Result) == 0 {
		t.Fatalf("incomplete record: %+v", res)
	}
}

func TestOptimizeHandlerInvalidJSON(t *testing.T) {
	opt := &stubOptimizer{}
	h := newOptimizeHandler(opt, &stubResultRepo{})

	rec := doOptimize(t, h, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if res := decodeError(t, rec); res.Error != "validation_error" {
		t.Fatalf("error kind = %q, want validation_error", res.Error)
	}
	if opt.calls != 0 {
		t.Fatalf("engine called %d times for invalid body", opt.calls)
	}
}

func TestOptimizeHandlerEmptyInput(t *testing.T) {
	opt := &stubOptimizer{}
	h := newOptimizeHandler(opt, &stubResultRepo{})

	rec := doOptimize(t, h, `{"jobs":[],"vehicles":[]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if res := decodeError(t, rec); res.Error != "validation_error" {
		t.Fatalf("error kind = %q, want validation_error", res.Error)
	}
	if opt.calls != 0 {
		t.Fatalf("engine called %d times before validation", opt.calls)
	}
}

func TestOptimizeHandlerErrorKinds(t *testing.T) {
	cases := []struct {
		name       string
		optimizer  *stubOptimizer
		repo       *stubResultRepo
		wantStatus int
		wantKind   string
	}{
		{
			name:       "missing job id",
			optimizer:  &stubOptimizer{err: engine.ErrMissingJobID},
			repo:       &stubResultRepo{},
			wantStatus: http.StatusBadGateway,
			wantKind:   "upstream_protocol_error",
		},
		{
			name:       "polling exhausted",
			optimizer:  &stubOptimizer{err: engine.ErrResultTimeout},
			repo:       &stubResultRepo{},
			wantStatus: http.StatusGatewayTimeout,
			wantKind:   "upstream_timeout_error",
		},
		{
			name:       "store write failure",
			optimizer:  &stubOptimizer{raw: json.RawMessage(`{}`)},
			repo:       &stubResultRepo{err: &domain.PersistenceError{Op: "insert result", Err: errors.New("down")}},
			wantStatus: http.StatusInternalServerError,
			wantKind:   "persistence_error",
		},
		{
			name:       "unknown failure",
			optimizer:  &stubOptimizer{err: errors.New("boom")},
			repo:       &stubResultRepo{},
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal_error",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newOptimizeHandler(c.optimizer, c.repo)

			rec := doOptimize(t, h, validBody)

			if rec.Code != c.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, c.wantStatus)
			}
			if res := decodeError(t, rec); res.Error != c.wantKind {
				t.Fatalf("error kind = %q, want %q", res.Error, c.wantKind)
			}
		})
	}
}

func TestOptimizeHandlerLenientCoordinates(t *testing.T) {
	// j2 has string coordinates (accepted), j3 has junk (dropped, not fatal).
	body := `{
		"jobs": [
			{"id":"j1","latitude":1,"longitude":1},
			{"id":"j2","latitude":"2.5","longitude":"3.5"},
			{"id":"j3","latitude":"abc","longitude":4}
		],
		"vehicles": [{"id":"v1","capacity":10}]
	}`

	var captured *ports.OptimizationRequest
	opt := &capturingOptimizer{raw: json.RawMessage(`{}`), captured: &captured}
	h := &OptimizeHandler{
		Optimizer: opt,
		Results:   &stubResultRepo{},
		Metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
	}

	rec := doOptimize(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s, want 200", rec.Code, rec.Body)
	}

	if captured == nil {
		t.Fatal("engine never called")
	}
	if len(captured.Jobs) != 2 {
		t.Fatalf("transformed jobs = %d, want 2 (j3 dropped)", len(captured.Jobs))
	}
	if len(captured.Locations) != 2 {
		t.Fatalf("locations = %v, want 2 entries", captured.Locations)
	}
}

type capturingOptimizer struct {
	raw      json.RawMessage
	captured **ports.OptimizationRequest
}

func (c *capturingOptimizer) Optimize(ctx context.Context, req *ports.OptimizationRequest) (json.RawMessage, error) {
	*c.captured = req
	return c.raw, nil
}
