package models

import (
	"time"
)

type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SenderLogin   string    `gorm:"not null;index" json:"sender_login"`
	ReceiverLogin string    `gorm:"not null;index" json:"receiver_login"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	CreatedAt     time.Time `json:"timestamp"`
}
