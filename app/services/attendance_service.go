package services

import (
	"errors"
	"time"

	"timeclock/app/models"
	"timeclock/app/repo"

	"gorm.io/gorm"
)

const (
	StatusNone       = "none"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
)

const historyLimit = 200

// AttendanceService drives the per-user per-day record lifecycle:
// none -> checked-in -> checked-out.
type AttendanceService struct {
	records *repo.AttendanceRepository
	loc     *time.Location
	now     func() time.Time
}

func NewAttendanceService(records *repo.AttendanceRepository, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{records: records, loc: loc, now: time.Now}
}

// Today is the current civil date in the configured timezone. State
// lookups compare this string exactly.
func (s *AttendanceService) Today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// Status projects a record onto its lifecycle label. It is never
// stored; the two timestamps are the only source of truth.
func Status(rec *models.Attendance) string {
	switch {
	case rec == nil || rec.CheckIn == nil:
		return StatusNone
	case rec.CheckOut == nil:
		return StatusCheckedIn
	default:
		return StatusCheckedOut
	}
}

func (s *AttendanceService) CheckIn(userID uint) (*models.Attendance, error) {
	date := s.Today()
	existing, err := s.records.FindByUserAndDate(userID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}
	now := s.now().In(s.loc)
	rec := &models.Attendance{UserID: userID, Date: date, CheckIn: &now}
	if err := s.records.Create(rec); err != nil {
		// Lost a same-day race: the unique (user,date) index already
		// holds a row, so report the state error, not a storage one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return rec, nil
}

func (s *AttendanceService) CheckOut(userID uint) (*models.Attendance, error) {
	date := s.Today()
	rec, err := s.records.FindByUserAndDate(userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if rec.CheckIn == nil {
		return nil, ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}
	now := s.now().In(s.loc)
	rec.CheckOut = &now
	if err := s.records.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// TodayStatus never fails for a missing record; that is the none state.
func (s *AttendanceService) TodayStatus(userID uint) (string, string, *models.Attendance, error) {
	date := s.Today()
	rec, err := s.records.FindByUserAndDate(userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return date, StatusNone, nil, nil
		}
		return date, "", nil, err
	}
	return date, Status(rec), rec, nil
}

func (s *AttendanceService) History(userID uint) ([]models.Attendance, error) {
	return s.records.ListByUser(userID, historyLimit)
}
