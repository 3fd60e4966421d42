package models

import (
	"time"
)

// Reaction kinds, stored as-is in the reaction column.
const (
	ReactionLike    = "Like"
	ReactionDislike = "Dislike"
)

// Reaction records the current like/dislike a user holds on a review.
// The composite unique index makes a second reaction from the same user
// an upsert, never a duplicate row.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"not null;uniqueIndex:idx_user_review_reaction" json:"user_login"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_user_review_reaction" json:"review_id"`
	Kind      string    `gorm:"column:reaction;size:10;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
