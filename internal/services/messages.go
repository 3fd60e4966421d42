package services

import (
	"bookstore/internal/models"

	"gorm.io/gorm"
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(gdb *gorm.DB) *MessageService {
	return &MessageService{db: gdb}
}

// Send appends a message to the recipient. Messages are never edited or
// deleted.
func (s *MessageService) Send(sender, receiver, text string) (*models.Message, error) {
	var user models.User
	if err := s.db.First(&user, "login = ?", receiver).Error; err != nil {
		return nil, storageErr("load receiver", err)
	}
	msg := models.Message{
		SenderLogin:   sender,
		ReceiverLogin: receiver,
		Text:          text,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, storageErr("create message", err)
	}
	return &msg, nil
}

// Conversation returns everything the user sent or received in timestamp
// order.
func (s *MessageService) Conversation(login string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Where("sender_login = ? OR receiver_login = ?", login, login).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, storageErr("list messages", err)
	}
	return messages, nil
}
