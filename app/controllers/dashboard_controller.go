package controllers

import (
	"net/http"

	"timeclock/app/dto"
	"timeclock/app/middleware"
	"timeclock/app/services"
)

type DashboardController struct{ Reports *services.ReportService }

func NewDashboardController(reports *services.ReportService) *DashboardController {
	return &DashboardController{Reports: reports}
}

func (c *DashboardController) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	total, err := c.Reports.EmployeeStats(claims.UserID)
	if err != nil {
		serverError(w, "employee-stats", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.EmployeeStatsResponse{TotalDaysRecorded: total})
}

func (c *DashboardController) ManagerStats(w http.ResponseWriter, r *http.Request) {
	total, err := c.Reports.ManagerStats()
	if err != nil {
		serverError(w, "manager-stats", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ManagerStatsResponse{TotalCheckedInToday: total})
}
