package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openKiosk(t *testing.T, app *testApp) string {
	t.Helper()
	status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions", "", nil)
	require.Equal(t, http.StatusCreated, status)
	data := dataOf(t, resp)
	assert.Equal(t, "idle", data["state"])
	return data["session_id"].(string)
}

func typePIN(t *testing.T, app *testApp, id, pin string) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	for _, d := range pin {
		status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/digits", "", map[string]string{"digit": string(d)})
		require.Equal(t, http.StatusOK, status, "digit %c: %v", d, resp)
		data = dataOf(t, resp)
	}
	return data
}

func TestKioskHandler_IdentifyAndMark(t *testing.T) {
	app := newTestApp(t)
	id := openKiosk(t, app)

	data := typePIN(t, app, id, "123")
	assert.Equal(t, float64(3), data["buffer_length"])
	assert.NotContains(t, data, "pin")

	data = typePIN(t, app, id, "456")
	assert.Equal(t, "confirm", data["state"])
	assert.Equal(t, "Ana Torres", data["employee_name"])

	status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/mark", "", map[string]string{"type": "in"})
	require.Equal(t, http.StatusOK, status)
	data = dataOf(t, resp)
	assert.Equal(t, "success", data["state"])
	assert.NotEmpty(t, data["message"])
	record := data["last_record"].(map[string]interface{})
	assert.Equal(t, "in", record["type"])

	records, total, err := app.attendance.List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "e1", records[0].EmployeeID)

	status, resp = app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/dismiss", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", dataOf(t, resp)["state"])
}

func TestKioskHandler_WrongPINShowsError(t *testing.T) {
	app := newTestApp(t)
	id := openKiosk(t, app)

	data := typePIN(t, app, id, "000000")
	assert.Equal(t, "error", data["state"])
	assert.NotEmpty(t, data["error"])
	assert.Equal(t, false, data["retryable"])

	status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/digits", "", map[string]string{"digit": "1"})
	assert.Equal(t, http.StatusConflict, status, "digits are ignored outside idle: %v", resp)
}

func TestKioskHandler_InvalidInput(t *testing.T) {
	app := newTestApp(t)
	id := openKiosk(t, app)

	status, _ := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/digits", "", map[string]string{"digit": "a"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/mark", "", map[string]string{"type": "in"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/mark", "", map[string]string{"type": "lunch"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = app.do(t, http.MethodGet, "/api/v1/kiosk/sessions/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestKioskHandler_RotateTemporaryPIN(t *testing.T) {
	app := newTestApp(t)
	id := openKiosk(t, app)

	data := typePIN(t, app, id, "654321")
	require.Equal(t, "change_pin", data["state"])

	status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/pin", "", map[string]string{"pin": "123456"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_PIN_ROTATION", errorCode(resp))

	status, resp = app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/pin", "", map[string]string{"pin": "246810"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "confirm", dataOf(t, resp)["state"])

	e, err := app.employees.GetByID(context.Background(), "e2")
	require.NoError(t, err)
	assert.Equal(t, "246810", e.PIN)
	assert.True(t, e.PINChanged)
}

func TestKioskHandler_ExitAndClose(t *testing.T) {
	app := newTestApp(t)

	id := openKiosk(t, app)
	status, resp := app.do(t, http.MethodPost, "/api/v1/kiosk/sessions/"+id+"/exit", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "exited", dataOf(t, resp)["state"])

	status, _ = app.do(t, http.MethodGet, "/api/v1/kiosk/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	id = openKiosk(t, app)
	status, _ = app.do(t, http.MethodDelete, "/api/v1/kiosk/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, app.kiosk.ActiveSessions())
}

func TestKioskHandler_StreamSendsSnapshots(t *testing.T) {
	app := newTestApp(t)
	id := openKiosk(t, app)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, app.server.URL+"/api/v1/kiosk/sessions/"+id+"/stream", nil)
	require.NoError(t, err)
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	next := func() (string, map[string]interface{}) {
		t.Helper()
		var event string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				var payload map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload))
				return event, payload
			}
		}
	}

	event, payload := next()
	assert.Equal(t, "state", event)
	assert.Equal(t, "idle", payload["state"])

	typePIN(t, app, id, "1")

	event, payload = next()
	assert.Equal(t, "state", event)
	assert.Equal(t, float64(1), payload["buffer_length"])

	cancel()
}
