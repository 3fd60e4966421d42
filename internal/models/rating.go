package models

import (
	"time"
)

// BookRating is a user's 1-5 star rating of a book, one row per
// (user, book) pair.
type BookRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserLogin string    `gorm:"not null;uniqueIndex:idx_user_book_rating" json:"user_login"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_user_book_rating" json:"book_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (BookRating) TableName() string {
	return "book_reactions"
}
