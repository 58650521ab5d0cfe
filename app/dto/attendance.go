package dto

import (
	"time"

	"timeclock/app/models"
)

type Record struct {
	ID       uint       `json:"id"`
	UserID   uint       `json:"userId"`
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
}

func RecordFromModel(a *models.Attendance) Record {
	return Record{ID: a.ID, UserID: a.UserID, Date: a.Date, CheckIn: a.CheckIn, CheckOut: a.CheckOut}
}

func RecordsFromModels(list []models.Attendance) []Record {
	out := make([]Record, 0, len(list))
	for i := range list {
		out = append(out, RecordFromModel(&list[i]))
	}
	return out
}

type TodayStatusResponse struct {
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Record *Record `json:"record,omitempty"`
}

type MonthSummaryResponse struct {
	Month       string `json:"month"`
	DaysPresent int64  `json:"daysPresent"`
}
