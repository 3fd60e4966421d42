package models

import (
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	// BookID is a plain column, like Purchase.BookID: deleting a book is
	// best-effort and leaves its reviews behind as unreachable rows.
	BookID    uint      `gorm:"not null;index" json:"book_id"`
	UserLogin string    `gorm:"not null;index" json:"user_login"`
	User      User      `gorm:"foreignKey:UserLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level reviews
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Dislikes  int       `gorm:"not null;default:0" json:"dislikes"`
	CreatedAt time.Time `json:"created_at"`
}
