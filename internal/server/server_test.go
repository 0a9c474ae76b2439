package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/tools"
)

const testToken = "test-token"

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("redis: connection refused")
}
func (brokenStore) Set(context.Context, string, []byte) error { return errors.New("redis: connection refused") }
func (brokenStore) Delete(context.Context, string) error      { return errors.New("redis: connection refused") }

func newTestServer(t *testing.T, store history.Store) *Server {
	t.Helper()
	return newTestServerWithLimits(t, store, 600, 100)
}

func newTestServerWithLimits(t *testing.T, store history.Store, perMinute, burst int) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:               8000,
		MaxPrincipal:       1e9,
		MaxTermYears:       50,
		MaxRate:            200,
		RateLimitPerMinute: perMinute,
		RateLimitBurst:     burst,
		CORSOrigins:        []string{"http://localhost:5173"},
	}
	tracer := noop.NewTracerProvider().Tracer("test")
	provider := identity.NewStaticProvider(testToken, identity.Identity{UID: "user-1", Email: "user@example.com", DisplayName: "Test User"})

	s := New(cfg, tools.NewRegistry(cfg, tracer), history.NewService(store), provider, tracer)
	t.Cleanup(s.limiter.Stop)
	return s
}

func do(s *Server, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t, history.NewMemoryStore()), http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())
	do(s, http.MethodGet, "/health", "", false)

	rec := do(s, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestListTools(t *testing.T) {
	rec := do(newTestServer(t, history.NewMemoryStore()), http.MethodGet, "/api/v1/tools", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tools []tools.Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Tools, 7)
}

func TestCallTool(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodPost, "/api/v1/tools/loan_calculate",
		`{"params":{"principal":1000000,"annual_rate_percent":8.5,"term_years":20}}`, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Tool   string               `json:"tool"`
		Result tools.LoanCalculation `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "loan_calculate", resp.Tool)
	assert.Equal(t, 8678.23, resp.Result.MonthlyPayment)
}

func TestCallToolErrors(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		typ    string
	}{
		{"unknown tool", "/api/v1/tools/loan_schedule_annuity", `{"params":{}}`, http.StatusNotFound, ErrorTypeNotFound},
		{"missing param", "/api/v1/tools/loan_calculate", `{"params":{"principal":1000}}`, http.StatusBadRequest, ErrorTypeValidation},
		{"unknown category", "/api/v1/tools/apply_loan_category", `{"params":{"category":"gold","principal":1,"term_years":1}}`, http.StatusBadRequest, ErrorTypeValidation},
		{"malformed body", "/api/v1/tools/loan_calculate", `{"params":`, http.StatusBadRequest, ErrorTypeValidation},
		{"no rate data", "/api/v1/tools/compare_deposit_offers", `{"params":{"category":"tax","principal":1000,"term_years":1}}`, http.StatusNotFound, ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.path, tt.body, false)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			p := decodeProblem(t, rec)
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.status, p.Status)
		})
	}
}

func TestPresetsAndRates(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodGet, "/api/v1/presets/loans", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"education"`)

	rec = do(s, http.MethodGet, "/api/v1/presets/deposits", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"senior"`)

	rec = do(s, http.MethodGet, "/api/v1/rates", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Canara Bank")
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodGet, "/api/v1/profile", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/profile", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var who identity.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &who))
	assert.Equal(t, identity.Identity{UID: "user-1", Email: "user@example.com", DisplayName: "Test User"}, who)
}

func TestCalculationsLifecycle(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodPost, "/api/v1/calculations/loans",
		`{"params":{"principal":500000,"annual_rate_percent":8.5,"term_years":5,"category":"home"}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var saved struct {
		Saved history.SavedCalculation `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, history.FamilyLoan, saved.Saved.Family)
	assert.Equal(t, "home", saved.Saved.Category)
	require.NotNil(t, saved.Saved.Loan)
	assert.InDelta(t, 10258.27, saved.Saved.Loan.Result.Installment, 0.01)

	rec = do(s, http.MethodPost, "/api/v1/calculations/deposit",
		`{"params":{"principal":100000,"annual_rate_percent":6.5,"term_years":5,"compounding":"monthly"}}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(s, http.MethodGet, "/api/v1/calculations/loan", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var list CalculationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Calculations, 1)
	assert.Equal(t, saved.Saved.ID, list.Calculations[0].ID)

	rec = do(s, http.MethodDelete, "/api/v1/calculations/loan", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/calculations/loan", "", true)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Calculations)

	rec = do(s, http.MethodGet, "/api/v1/calculations/deposit", "", true)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Calculations, 1)
}

func TestCalculationsRequireLogin(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodPost, "/api/v1/calculations/loan",
		`{"params":{"principal":500000,"annual_rate_percent":8.5,"term_years":5}}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrorTypeUnauthorized, decodeProblem(t, rec).Type)
}

func TestCalculationsErrors(t *testing.T) {
	s := newTestServer(t, history.NewMemoryStore())

	rec := do(s, http.MethodGet, "/api/v1/calculations/cards", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(s, http.MethodPost, "/api/v1/calculations/loan",
		`{"params":{"principal":0,"annual_rate_percent":8.5,"term_years":5}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculationsStoreUnavailable(t *testing.T) {
	s := newTestServer(t, brokenStore{})

	rec := do(s, http.MethodPost, "/api/v1/calculations/loan",
		`{"params":{"principal":500000,"annual_rate_percent":8.5,"term_years":5}}`, true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrorTypeUnavailable, decodeProblem(t, rec).Type)

	rec = do(s, http.MethodGet, "/api/v1/calculations/loan", "", true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServerWithLimits(t, history.NewMemoryStore(), 1, 2)

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/api/v1/rates", "", false).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/api/v1/rates", "", false).Code)

	rec := do(s, http.MethodGet, "/api/v1/rates", "", false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, ErrorTypeRateLimit, decodeProblem(t, rec).Type)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/health", "", false).Code, "health is not rate limited")
}
