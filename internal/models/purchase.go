package models

import (
	"time"
)

// Purchase is an append-only ledger event. Rows are never mutated or
// deleted; each one corresponds to exactly one stock decrement.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"not null;index" json:"user_login"`
	BookID    uint      `gorm:"not null;index" json:"book_id"`
	CreatedAt time.Time `json:"timestamp"`
}
