package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventcost/core/currency"
	"eventcost/core/estimate"
)

func newTestServer(t *testing.T) (*Server, *Metrics) {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	logger := zap.NewNop()
	handler := NewHandler(estimate.New(nil, logger), currency.BRL, logger, metrics)
	return NewServer("test", handler, registry, logger), metrics
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestEstimateQuery(t *testing.T) {
	s, metrics := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/estimate?events=3000", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "C", resp.Estimate.Tier)
	assert.Equal(t, "62061.84", resp.Estimate.MonthlyCost)
	assert.Equal(t, "R$ 744.742,08", resp.Estimate.AnnualFormatted)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
	assert.Empty(t, resp.Reference)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EstimatesTotal.WithLabelValues("C")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "GET /estimate", "200")))
}

func TestEstimatePost(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{`{"events": 30000, "include_reference": true}`, `{"events": "30000", "include_reference": true}`} {
		rec := do(t, s, http.MethodPost, "/estimate", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp EstimateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "E", resp.Estimate.Tier)
		assert.Equal(t, "133601.84", resp.Estimate.MonthlyCost)
		assert.Len(t, resp.Reference, 6)
	}
}

func TestEstimateZeroIsNotAnError(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/estimate?events=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "N/A", resp.Estimate.Tier)
	assert.Equal(t, "R$ 0,00", resp.Estimate.MonthlyFormatted)
}

func TestEstimateBadInput(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   string
	}{
		{"negative", http.MethodGet, "/estimate?events=-1", "", "INPUT_ERROR"},
		{"missing", http.MethodGet, "/estimate", "", "INPUT_ERROR"},
		{"not a number", http.MethodGet, "/estimate?events=many", "", "INPUT_ERROR"},
		{"bad json", http.MethodPost, "/estimate", `{"events":`, "INVALID_JSON"},
		{"huge exponent", http.MethodGet, "/estimate?events=1e2000000000", "", "INPUT_ERROR"},
		{"tiny exponent", http.MethodGet, "/estimate?events=1e-10000000", "", "INPUT_ERROR"},
		{"over the cap", http.MethodGet, "/estimate?events=1e13", "", "INPUT_ERROR"},
		{"huge exponent body", http.MethodPost, "/estimate", `{"events": 1e10000000}`, "INPUT_ERROR"},
		{"oversized body", http.MethodPost, "/estimate", `{"events": 1, "pad": "` + strings.Repeat("x", maxRequestBytes) + `"}`, "INVALID_JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestTiers(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TiersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "BRL", resp.Currency)
	require.Len(t, resp.Tiers, 6)
	assert.Equal(t, "F", resp.Tiers[5].Label)
	assert.Equal(t, "> 25.000", resp.Tiers[5].Range)
}

func TestHealthVersionAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)

	do(t, s, http.MethodGet, "/estimate?events=10", "")
	rec = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `eventcost_estimates_total{tier="A"} 1`)
}

func TestUnknownRouteIsCounted(t *testing.T) {
	s, metrics := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestNilLoggerFallsBackToGlobal(t *testing.T) {
	handler := NewHandler(estimate.New(nil, nil), currency.BRL, nil, nil)
	s := NewServer("test", handler, nil, nil)

	rec := do(t, s, http.MethodGet, "/estimate?events=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
