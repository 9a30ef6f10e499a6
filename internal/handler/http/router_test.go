package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointage-hq/pointage-backend-go/internal/config"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/jwt"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/keylock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/sse"
	"github.com/pointage-hq/pointage-backend-go/internal/repository/jsonfile"
	authService "github.com/pointage-hq/pointage-backend-go/internal/service/auth"
	employeeService "github.com/pointage-hq/pointage-backend-go/internal/service/employee"
	payrollService "github.com/pointage-hq/pointage-backend-go/internal/service/payroll"
	punchService "github.com/pointage-hq/pointage-backend-go/internal/service/punch"
)

const (
	testSecret   = "test-secret-key-for-jwt"
	testPassword = "password123"
)

type noopMailer struct{}

func (noopMailer) SendUnclosedShiftNotice(to, employeeName, dateKey, checkInTime string) error {
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := jsonfile.NewEmployeeStore(filepath.Join(t.TempDir(), "employees.json"))
	require.NoError(t, err)

	clk, err := clock.New(clock.DefaultTimezone)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService(testSecret, "1h")
	hub := sse.NewHub()
	locks := keylock.New()

	router := NewRouter(
		jwtSvc,
		"test",
		NewAuthHandler(authService.NewAuthService(config.AdminConfig{Username: "admin", PasswordHash: string(hash)}, jwtSvc)),
		NewPunchHandler(punchService.NewPunchService(store, clk, hub, noopMailer{}, 5, locks)),
		NewEmployeeHandler(employeeService.NewEmployeeService(store, clk, hub, locks)),
		NewPayrollHandler(payrollService.NewPayrollService(store)),
		NewEventsHandler(hub),
		NewTimeHandler(clk),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	return data["access_token"].(string)
}

func serverTime(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/time", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	return data["hour"].(string)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		token := login(t, srv)
		assert.NotEmpty(t, token)
	})

	t.Run("bad credentials are rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
			"username": "admin",
			"password": "nope",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/employees/", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEmployeeLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// create
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/employees/", token, map[string]interface{}{
		"name":       "Marie Joseph",
		"role":       "Cashier",
		"pay_type":   "hourly",
		"pay_amount": "15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["data"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, id)

	// kiosk check-in with the server's own time is always within tolerance
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/punches/check-in", "", map[string]string{
		"employee_id": id,
		"time":        serverTime(t, srv),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// double check-in conflicts
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/punches/check-in", "", map[string]string{
		"employee_id": id,
		"time":        serverTime(t, srv),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// unclosed shift is visible on the kiosk surface
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/punches/%s/unclosed", srv.URL, id), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unclosed := decodeBody(t, resp)
	assert.Len(t, unclosed["data"].([]interface{}), 1)

	// history requires admin
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%s/shifts", srv.URL, id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// delete
	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/employees/%s", srv.URL, id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%s", srv.URL, id), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPunchTimeOutOfTolerance(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/employees/", token, map[string]interface{}{
		"name": "Jean Baptiste",
		"role": "Guard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := created["data"].(map[string]interface{})["id"].(string)

	// an hour ahead of the server clock is always outside the window
	now, err := time.Parse("3:04 PM", serverTime(t, srv))
	require.NoError(t, err)
	bogus := now.Add(time.Hour).Format("3:04 PM")

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/punches/check-in", "", map[string]string{
		"employee_id": id,
		"time":        bogus,
	})
	body := decodeBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errDetail := body["error"].(map[string]interface{})
	details := errDetail["details"].(map[string]interface{})
	assert.NotEmpty(t, details["required_time"])
}
