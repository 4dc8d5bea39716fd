package models

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleCustomer  Role = "customer"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User is an account. PasswordHash is a bcrypt hash and never leaves the
// service layer.
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Phone        *string    `gorm:"size:20"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	Bio          *string    `gorm:"type:text"`
	Status       UserStatus `gorm:"type:varchar(20);not null"`
	IsActive     bool       `gorm:"not null"`
	IsStaff      bool       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin reports whether the account may authenticate.
func (u *User) CanLogin() bool {
	return u.IsActive && u.Status == UserStatusActive
}
