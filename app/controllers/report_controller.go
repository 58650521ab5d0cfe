package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"timeclock/app/cache"
	"timeclock/app/dto"
	"timeclock/app/services"
)

type ReportController struct {
	Reports    *services.ReportService
	Attendance *services.AttendanceService
	Roster     *cache.Roster
}

func NewReportController(reports *services.ReportService, att *services.AttendanceService, roster *cache.Roster) *ReportController {
	return &ReportController{Reports: reports, Attendance: att, Roster: roster}
}

func (c *ReportController) All(w http.ResponseWriter, r *http.Request) {
	rows, err := c.Reports.AllAttendance()
	if err != nil {
		serverError(w, "all-attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AnnotatedFromRows(rows))
}

func (c *ReportController) Employee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	recs, err := c.Reports.EmployeeAttendance(uint(id))
	if err != nil {
		serverError(w, "employee-attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.RecordsFromModels(recs))
}

func (c *ReportController) TeamSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := c.Reports.TeamSummary()
	if err != nil {
		serverError(w, "team-summary", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TeamSummaryResponse{Date: sum.Date, PresentCount: sum.PresentCount, ByRole: sum.ByRole})
}

// TodayRoster serves today's roster, from the cache when one is
// configured. Check-in and check-out drop the cached day, so a stale
// entry can only outlive a mutation by the configured TTL when the
// mutation happened on another instance.
func (c *ReportController) TodayRoster(w http.ResponseWriter, r *http.Request) {
	date := c.Attendance.Today()
	if payload, ok := c.Roster.Get(r.Context(), date); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
		return
	}
	rows, err := c.Reports.TodayRoster()
	if err != nil {
		serverError(w, "today-roster", err)
		return
	}
	payload, err := json.Marshal(dto.RosterFromRows(rows))
	if err != nil {
		serverError(w, "today-roster", err)
		return
	}
	c.Roster.Set(r.Context(), date, payload)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (c *ReportController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	csvBytes, err := c.Reports.ExportCSV()
	if err != nil {
		serverError(w, "export-csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	_, _ = w.Write(csvBytes)
}
