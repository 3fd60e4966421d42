package handlers

import (
	"net/http"

	"bookstore/internal/identity"
	"bookstore/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	identity *identity.Service
}

func NewAuthHandler(ident *identity.Service) *AuthHandler {
	return &AuthHandler{identity: ident}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Login      string `json:"login" binding:"required"`
		FirstName  string `json:"first_name" binding:"required"`
		LastName   string `json:"last_name" binding:"required"`
		Email      string `json:"email" binding:"required"`
		BirthDate  string `json:"birth_date" binding:"required"`
		Password   string `json:"password" binding:"required,min=6"`
		AvatarPath string `json:"avatar_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Register(req.Login, req.FirstName, req.LastName, req.Email, req.BirthDate, req.Password, req.AvatarPath)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.identity.Authenticate(req.Login, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := middleware.SetSessionLogin(c, user.Login); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session save failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}
