package models

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:191;not null"`
	Email        string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:employee"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
