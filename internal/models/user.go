package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName     string         `json:"full_name" gorm:"size:100"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string         `json:"-" gorm:"not null;size:255"`
	Role         UserRole       `json:"role" gorm:"type:enum('customer','admin');default:'customer'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
