package router

import (
	"net/http"

	"timeclock/app/controllers"
	"timeclock/app/middleware"
)

func NewRouter(healthCtrl *controllers.HealthController, authCtrl *controllers.AuthController, attCtrl *controllers.AttendanceController, repCtrl *controllers.ReportController, dashCtrl *controllers.DashboardController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("/api/health", healthCtrl.Health)
	mux.HandleFunc("/api/auth/register", authCtrl.Register)
	mux.HandleFunc("/api/auth/login", authCtrl.Login)
	mux.Handle("/api/auth/me", mw.RequireAuth(http.HandlerFunc(authCtrl.Me)))

	// employee scope
	mux.Handle("/api/attendance/checkin", mw.RequireAuth(http.HandlerFunc(attCtrl.CheckIn)))
	mux.Handle("/api/attendance/checkout", mw.RequireAuth(http.HandlerFunc(attCtrl.CheckOut)))
	mux.Handle("/api/attendance/my-history", mw.RequireAuth(http.HandlerFunc(attCtrl.MyHistory)))
	mux.Handle("/api/attendance/my-summary", mw.RequireAuth(http.HandlerFunc(attCtrl.MySummary)))
	mux.Handle("/api/attendance/today", mw.RequireAuth(http.HandlerFunc(attCtrl.TodayStatus)))
	mux.Handle("/api/dashboard/employee", mw.RequireAuth(http.HandlerFunc(dashCtrl.EmployeeStats)))

	// manager scope
	mux.Handle("/api/attendance/all", mw.RequireManager(http.HandlerFunc(repCtrl.All)))
	mux.Handle("/api/attendance/employee", mw.RequireManager(http.HandlerFunc(repCtrl.Employee)))
	mux.Handle("/api/attendance/summary", mw.RequireManager(http.HandlerFunc(repCtrl.TeamSummary)))
	mux.Handle("/api/attendance/export", mw.RequireManager(http.HandlerFunc(repCtrl.ExportCSV)))
	mux.Handle("/api/attendance/today-status", mw.RequireManager(http.HandlerFunc(repCtrl.TodayRoster)))
	mux.Handle("/api/dashboard/manager", mw.RequireManager(http.HandlerFunc(dashCtrl.ManagerStats)))

	return mux
}
