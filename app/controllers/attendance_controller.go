package controllers

import (
	"errors"
	"net/http"

	"timeclock/app/cache"
	"timeclock/app/dto"
	"timeclock/app/middleware"
	"timeclock/app/services"
)

type AttendanceController struct {
	Attendance *services.AttendanceService
	Reports    *services.ReportService
	Roster     *cache.Roster
}

func NewAttendanceController(att *services.AttendanceService, reports *services.ReportService, roster *cache.Roster) *AttendanceController {
	return &AttendanceController{Attendance: att, Reports: reports, Roster: roster}
}

func (c *AttendanceController) CheckIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims := middleware.GetClaims(r.Context())
	rec, err := c.Attendance.CheckIn(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			writeError(w, http.StatusBadRequest, "already checked in")
			return
		}
		serverError(w, "checkin", err)
		return
	}
	c.Roster.Invalidate(r.Context(), rec.Date)
	writeJSON(w, http.StatusCreated, dto.RecordFromModel(rec))
}

func (c *AttendanceController) CheckOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims := middleware.GetClaims(r.Context())
	rec, err := c.Attendance.CheckOut(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotCheckedIn):
			writeError(w, http.StatusBadRequest, "not checked in")
		case errors.Is(err, services.ErrAlreadyCheckedOut):
			writeError(w, http.StatusBadRequest, "already checked out")
		default:
			serverError(w, "checkout", err)
		}
		return
	}
	c.Roster.Invalidate(r.Context(), rec.Date)
	writeJSON(w, http.StatusOK, dto.RecordFromModel(rec))
}

func (c *AttendanceController) MyHistory(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	recs, err := c.Attendance.History(claims.UserID)
	if err != nil {
		serverError(w, "my-history", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.RecordsFromModels(recs))
}

func (c *AttendanceController) MySummary(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	month, days, err := c.Reports.MonthSummary(claims.UserID, r.URL.Query().Get("month"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
		serverError(w, "my-summary", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MonthSummaryResponse{Month: month, DaysPresent: days})
}

func (c *AttendanceController) TodayStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	date, status, rec, err := c.Attendance.TodayStatus(claims.UserID)
	if err != nil {
		serverError(w, "today-status", err)
		return
	}
	resp := dto.TodayStatusResponse{Date: date, Status: status}
	if rec != nil {
		d := dto.RecordFromModel(rec)
		resp.Record = &d
	}
	writeJSON(w, http.StatusOK, resp)
}
