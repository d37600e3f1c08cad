package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler(t *testing.T) {
	app := newTestApp(t)
	reviewer := app.token(t, "u-reviewer", "reviewer")

	status, body := app.do(t, http.MethodGet, "/api/v1/dashboard", reviewer, nil)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, body)
	summary, ok := data["employee_summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), summary["active_employee"])
	assert.Equal(t, float64(1), summary["awaiting_pin_change"])
	assert.Equal(t, float64(0), data["pending_approvals"])
	assert.Equal(t, float64(0), data["active_kiosk_sessions"])

	status, body = app.do(t, http.MethodGet, "/api/v1/dashboard/attendance?date=2024-03-14", reviewer, nil)
	require.Equal(t, http.StatusOK, status)
	stats := dataOf(t, body)
	assert.Equal(t, "2024-03-14", stats["date"])
	assert.Equal(t, float64(2), stats["absent"])

	status, _ = app.do(t, http.MethodGet, "/api/v1/dashboard/attendance?date=14-03-2024", reviewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = app.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
