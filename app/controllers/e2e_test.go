package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timeclock/app/controllers"
	"timeclock/app/dto"
	jwtutil "timeclock/app/jwt"
	"timeclock/app/middleware"
	"timeclock/app/repo"
	"timeclock/app/services"
	"timeclock/app/testutil"
	"timeclock/router"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, name, secret string) *httptest.Server {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	userRepo := repo.NewUserRepository(db)
	attRepo := repo.NewAttendanceRepository(db)
	userSvc := services.NewUserService(userRepo)
	attSvc := services.NewAttendanceService(attRepo, time.UTC)
	reportSvc := services.NewReportService(attRepo, time.UTC)

	signer := &jwtutil.Signer{Secret: []byte(secret), Issuer: "timeclock-test", ExpHours: 8}
	h := router.NewRouter(
		controllers.NewHealthController(),
		controllers.NewAuthController(userSvc, signer),
		controllers.NewAttendanceController(attSvc, reportSvc, nil),
		controllers.NewReportController(reportSvc, attSvc, nil),
		controllers.NewDashboardController(reportSvc),
		&middleware.Auth{Signer: signer},
	)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func register(t *testing.T, ts *httptest.Server, username, password, role string) dto.RegisterResponse {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"username": username, "password": password, "role": role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
	var out dto.RegisterResponse
	decode(t, resp, &out)
	return out
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	var out dto.TokenResponse
	decode(t, resp, &out)
	return out.Token
}

func TestEmployeeLifecycleEndToEnd(t *testing.T) {
	ts := newTestServer(t, "e2e_lifecycle", "test-secret")

	created := register(t, ts, "alice", "secret", "")
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "employee", created.Role)
	assert.NotZero(t, created.ID)

	token := login(t, ts, "alice", "secret")

	// Check in.
	resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.Record
	decode(t, resp, &rec)
	assert.NotNil(t, rec.CheckIn)
	assert.Nil(t, rec.CheckOut)

	// Status reflects the check-in.
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var status dto.TodayStatusResponse
	decode(t, resp, &status)
	assert.Equal(t, "checked-in", status.Status)
	assert.Equal(t, rec.Date, status.Date)

	// Second check-in is rejected without touching state.
	resp = do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e map[string]string
	decode(t, resp, &e)
	assert.Equal(t, "already checked in", e["error"])

	// Check out.
	resp = do(t, http.MethodPost, ts.URL+"/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.Record
	decode(t, resp, &out)
	assert.NotNil(t, out.CheckOut)

	// Second check-out is rejected.
	resp = do(t, http.MethodPost, ts.URL+"/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "already checked out", e["error"])

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/today", token, nil)
	decode(t, resp, &status)
	assert.Equal(t, "checked-out", status.Status)

	// History holds exactly one fully populated record.
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/my-history", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var history []dto.Record
	decode(t, resp, &history)
	if assert.Len(t, history, 1) {
		assert.NotNil(t, history[0].CheckIn)
		assert.NotNil(t, history[0].CheckOut)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	ts := newTestServer(t, "e2e_checkout_first", "test-secret")
	register(t, ts, "alice", "secret", "")
	token := login(t, ts, "alice", "secret")

	resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e map[string]string
	decode(t, resp, &e)
	assert.Equal(t, "not checked in", e["error"])

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/my-history", token, nil)
	var history []dto.Record
	decode(t, resp, &history)
	assert.Empty(t, history)
}

func TestManagerRosterAccess(t *testing.T) {
	ts := newTestServer(t, "e2e_roster", "test-secret")

	register(t, ts, "marge", "secret", "manager")
	register(t, ts, "alice", "secret", "")
	register(t, ts, "bob", "secret", "")
	mgr := login(t, ts, "marge", "secret")
	alice := login(t, ts, "alice", "secret")
	bob := login(t, ts, "bob", "secret")

	for _, tok := range []string{alice, bob} {
		resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", tok, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Manager sees everyone with identities resolved.
	resp := do(t, http.MethodGet, ts.URL+"/api/attendance/all", mgr, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []dto.AnnotatedRecord
	decode(t, resp, &rows)
	assert.Len(t, rows, 2)
	names := map[string]bool{}
	for _, r := range rows {
		names[r.Username] = true
		assert.Equal(t, "employee", r.Role)
	}
	assert.True(t, names["alice"] && names["bob"])

	// Employees are forbidden, anonymous callers unauthorized.
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/all", alice, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Today's team summary groups by role.
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/summary", mgr, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.TeamSummaryResponse
	decode(t, resp, &sum)
	assert.Equal(t, 2, sum.PresentCount)
	assert.Equal(t, 2, sum.ByRole["employee"])

	// Today's roster names both employees.
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/today-status", mgr, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var roster []dto.RosterEntry
	decode(t, resp, &roster)
	assert.Len(t, roster, 2)

	// Dashboards.
	resp = do(t, http.MethodGet, ts.URL+"/api/dashboard/manager", mgr, nil)
	var ms dto.ManagerStatsResponse
	decode(t, resp, &ms)
	assert.EqualValues(t, 2, ms.TotalCheckedInToday)

	resp = do(t, http.MethodGet, ts.URL+"/api/dashboard/employee", alice, nil)
	var es dto.EmployeeStatsResponse
	decode(t, resp, &es)
	assert.EqualValues(t, 1, es.TotalDaysRecorded)
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t, "e2e_csv", "test-secret")
	register(t, ts, "marge", "secret", "manager")
	register(t, ts, "alice", "secret", "")
	mgr := login(t, ts, "marge", "secret")
	alice := login(t, ts, "alice", "secret")

	resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", alice, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/export", mgr, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	assert.Equal(t, "username,email,date,checkIn,checkOut", lines[0])
	if assert.Len(t, lines, 2) {
		// No check-out yet: last field is empty, not a literal null.
		assert.True(t, strings.HasSuffix(lines[1], ","), "row should end with empty checkOut: %q", lines[1])
		assert.True(t, strings.HasPrefix(lines[1], "alice,"), "row: %q", lines[1])
	}
}

func TestMySummary(t *testing.T) {
	ts := newTestServer(t, "e2e_summary", "test-secret")
	register(t, ts, "alice", "secret", "")
	token := login(t, ts, "alice", "secret")

	resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/my-summary", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.MonthSummaryResponse
	decode(t, resp, &sum)
	assert.Equal(t, time.Now().UTC().Format("2006-01"), sum.Month)
	assert.EqualValues(t, 1, sum.DaysPresent)

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/my-summary?month=1999-01", token, nil)
	decode(t, resp, &sum)
	assert.EqualValues(t, 0, sum.DaysPresent)

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/my-summary?month=march-2024", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployeeAttendanceValidation(t *testing.T) {
	ts := newTestServer(t, "e2e_employee", "test-secret")
	register(t, ts, "marge", "secret", "manager")
	created := register(t, ts, "alice", "secret", "")
	mgr := login(t, ts, "marge", "secret")
	alice := login(t, ts, "alice", "secret")

	resp := do(t, http.MethodPost, ts.URL+"/api/attendance/checkin", alice, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/employee?id=abc", mgr, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, fmt.Sprintf("%s/api/attendance/employee?id=%d", ts.URL, created.ID), mgr, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var recs []dto.Record
	decode(t, resp, &recs)
	assert.Len(t, recs, 1)
}

func TestAuthEndpointErrors(t *testing.T) {
	ts := newTestServer(t, "e2e_auth", "test-secret")
	register(t, ts, "alice", "secret", "")

	// Duplicate username.
	resp := do(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{"username": "alice", "password": "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Bad role.
	resp = do(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{"username": "bob", "password": "x", "role": "director"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing fields.
	resp = do(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Wrong password and unknown user both come back 401.
	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{"username": "nobody", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Check-in only accepts POST.
	token := login(t, ts, "alice", "secret")
	resp = do(t, http.MethodGet, ts.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	// /me returns the identity without any password material.
	resp = do(t, http.MethodGet, ts.URL+"/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	decode(t, resp, &raw)
	assert.Equal(t, "alice", raw["username"])
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "passwordHash")
}

func TestLoginWithoutSecretIsServerError(t *testing.T) {
	ts := newTestServer(t, "e2e_nosecret", "")
	register(t, ts, "alice", "secret", "")

	resp := do(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var e map[string]string
	decode(t, resp, &e)
	assert.Equal(t, "server misconfigured", e["error"])
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "e2e_health", "test-secret")
	resp := do(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
