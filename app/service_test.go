package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuksel-arslan/SmartCon360-sub007/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(config.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestHealthEndpoint(t *testing.T) {
	svc := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "takt-engine", body["service"])
}

func TestServiceRoutesMounted(t *testing.T) {
	svc := newTestService(t)

	body := `{
        "zones": [{"id": "z0", "sequence": 0}, {"id": "z1", "sequence": 1}],
        "wagons": [{"id": "w0", "trade_id": "drywall", "sequence": 0, "duration_days": 5}],
        "takt_time": 5,
        "start_date": "2026-03-02"
    }`
	req := httptest.NewRequest(http.MethodPost, "/takt/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Data struct {
			PlanID       string `json:"plan_id"`
			TotalPeriods int    `json:"total_periods"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.NotEmpty(t, env.Data.PlanID)
	assert.Equal(t, 2, env.Data.TotalPeriods)

	req = httptest.NewRequest(http.MethodPost, "/simulate/what-if", strings.NewReader(`{
        "plan_id": "`+env.Data.PlanID+`",
        "changes": [{"type": "add_buffer", "parameters": {"periods": 1}}]
    }`))
	rec = httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
