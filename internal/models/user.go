package models

import (
	"time"
)

// Role values. The only behavioral difference between the two is a
// capability gate in the middleware, not a type hierarchy.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	Login      string    `gorm:"primaryKey;size:64" json:"login"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	LastName   string    `gorm:"not null" json:"last_name"`
	Email      string    `gorm:"not null" json:"email"`
	BirthDate  string    `gorm:"not null" json:"birth_date"`
	Password   string    `gorm:"not null" json:"-"` // bcrypt hash
	AvatarPath string    `json:"avatar_path"`       // opaque file reference
	Role       string    `gorm:"size:20;default:'client';not null" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}
