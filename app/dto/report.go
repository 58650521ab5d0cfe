package dto

import (
	"time"

	"timeclock/app/repo"
)

// AnnotatedRecord is a roster-wide record with its owner resolved.
type AnnotatedRecord struct {
	ID       uint       `json:"id"`
	UserID   uint       `json:"userId"`
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
	Username string     `json:"username"`
	Role     string     `json:"role"`
}

func AnnotatedFromRows(rows []repo.RecordWithUser) []AnnotatedRecord {
	out := make([]AnnotatedRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, AnnotatedRecord{
			ID: r.ID, UserID: r.UserID, Date: r.Date,
			CheckIn: r.CheckIn, CheckOut: r.CheckOut,
			Username: r.Username, Role: r.Role,
		})
	}
	return out
}

type RosterEntry struct {
	Username string     `json:"username"`
	Role     string     `json:"role"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
}

func RosterFromRows(rows []repo.RecordWithUser) []RosterEntry {
	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, RosterEntry{Username: r.Username, Role: r.Role, CheckIn: r.CheckIn, CheckOut: r.CheckOut})
	}
	return out
}

type TeamSummaryResponse struct {
	Date         string         `json:"date"`
	PresentCount int            `json:"presentCount"`
	ByRole       map[string]int `json:"byRole"`
}

type EmployeeStatsResponse struct {
	TotalDaysRecorded int64 `json:"totalDaysRecorded"`
}

type ManagerStatsResponse struct {
	TotalCheckedInToday int64 `json:"totalCheckedInToday"`
}
