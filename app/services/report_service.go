package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"time"

	"timeclock/app/models"
	"timeclock/app/repo"
)

const (
	allAttendanceLimit = 1000
	exportLimit        = 5000
)

var ErrInvalidMonth = errors.New("invalid month")

type TeamSummary struct {
	Date         string
	PresentCount int
	ByRole       map[string]int
}

// ReportService serves the read-only aggregations over the attendance
// store. It never mutates records.
type ReportService struct {
	records *repo.AttendanceRepository
	loc     *time.Location
	now     func() time.Time
}

func NewReportService(records *repo.AttendanceRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{records: records, loc: loc, now: time.Now}
}

func (s *ReportService) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// MonthSummary counts the caller's records within the month, an exact
// half-open date range rather than a prefix match. A record counts as
// present by existing, checked out or not.
func (s *ReportService) MonthSummary(userID uint, month string) (string, int64, error) {
	if month == "" {
		month = s.now().In(s.loc).Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return "", 0, ErrInvalidMonth
	}
	from := start.Format("2006-01") + "-01"
	to := start.AddDate(0, 1, 0).Format("2006-01") + "-01"
	count, err := s.records.CountByUserInRange(userID, from, to)
	if err != nil {
		return "", 0, err
	}
	return month, count, nil
}

func (s *ReportService) AllAttendance() ([]repo.RecordWithUser, error) {
	return s.records.ListAllWithUsers(allAttendanceLimit)
}

func (s *ReportService) EmployeeAttendance(userID uint) ([]models.Attendance, error) {
	return s.records.ListByUser(userID, 0)
}

func (s *ReportService) TeamSummary() (TeamSummary, error) {
	date := s.today()
	rows, err := s.records.ListByDateWithUsers(date)
	if err != nil {
		return TeamSummary{}, err
	}
	byRole := map[string]int{}
	for _, r := range rows {
		byRole[r.Role]++
	}
	return TeamSummary{Date: date, PresentCount: len(rows), ByRole: byRole}, nil
}

func (s *ReportService) TodayRoster() ([]repo.RecordWithUser, error) {
	return s.records.ListByDateWithUsers(s.today())
}

// ExportCSV renders up to 5000 joined records. Header and field order
// are fixed; absent timestamps render as empty strings.
func (s *ReportService) ExportCSV() ([]byte, error) {
	rows, err := s.records.ListAllWithUsers(exportLimit)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"username", "email", "date", "checkIn", "checkOut"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Username, r.Email, r.Date, formatInstant(r.CheckIn), formatInstant(r.CheckOut)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (s *ReportService) EmployeeStats(userID uint) (int64, error) {
	return s.records.CountByUser(userID)
}

func (s *ReportService) ManagerStats() (int64, error) {
	return s.records.CountByDate(s.today())
}
