package models

import (
	"time"
)

// Category is immutable once created; there is no deletion path.
type Category struct {
	Name      string    `gorm:"primaryKey" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
