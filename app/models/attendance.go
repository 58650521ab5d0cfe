package models

import "time"

// Attendance holds at most one row per (user, date). The composite
// unique index is the only concurrency control for check-in races.
type Attendance struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_date"`
	Date      string `gorm:"size:10;not null;uniqueIndex:idx_user_date"`
	CheckIn   *time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
