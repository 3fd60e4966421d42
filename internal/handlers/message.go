package handlers

import (
	"net/http"

	"bookstore/internal/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		Receiver string `json:"receiver" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	msg, err := h.messages.Send(user.Login, req.Receiver, req.Text)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	messages, err := h.messages.Conversation(user.Login)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
