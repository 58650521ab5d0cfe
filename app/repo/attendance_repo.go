package repo

import (
	"time"

	"timeclock/app/models"

	"gorm.io/gorm"
)

// RecordWithUser is an attendance row joined with its owner, used by
// the roster-wide report queries.
type RecordWithUser struct {
	ID       uint
	UserID   uint
	Date     string
	CheckIn  *time.Time
	CheckOut *time.Time
	Username string
	Role     string
	Email    string
}

const joinedColumns = "attendances.id, attendances.user_id, attendances.date, attendances.check_in, attendances.check_out, users.username, users.role, users.email"

type AttendanceRepository struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(a *models.Attendance) error { return r.db.Create(a).Error }

func (r *AttendanceRepository) Save(a *models.Attendance) error { return r.db.Save(a).Error }

func (r *AttendanceRepository) FindByUserAndDate(userID uint, date string) (*models.Attendance, error) {
	var a models.Attendance
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) ListByUser(userID uint, limit int) ([]models.Attendance, error) {
	var recs []models.Attendance
	q := r.db.Where("user_id = ?", userID).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return recs, q.Find(&recs).Error
}

// CountByUserInRange counts records with from <= date < to. Dates are
// "YYYY-MM-DD" strings, so lexicographic comparison is date order.
func (r *AttendanceRepository) CountByUserInRange(userID uint, from, to string) (int64, error) {
	var count int64
	return count, r.db.Model(&models.Attendance{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Count(&count).Error
}

func (r *AttendanceRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	return count, r.db.Model(&models.Attendance{}).Where("user_id = ?", userID).Count(&count).Error
}

func (r *AttendanceRepository) CountByDate(date string) (int64, error) {
	var count int64
	return count, r.db.Model(&models.Attendance{}).Where("date = ?", date).Count(&count).Error
}

func (r *AttendanceRepository) ListAllWithUsers(limit int) ([]RecordWithUser, error) {
	var rows []RecordWithUser
	q := r.db.Model(&models.Attendance{}).
		Select(joinedColumns).
		Joins("JOIN users ON users.id = attendances.user_id").
		Order("attendances.date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return rows, q.Scan(&rows).Error
}

func (r *AttendanceRepository) ListByDateWithUsers(date string) ([]RecordWithUser, error) {
	var rows []RecordWithUser
	return rows, r.db.Model(&models.Attendance{}).
		Select(joinedColumns).
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("attendances.date = ?", date).
		Scan(&rows).Error
}
