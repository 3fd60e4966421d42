package handlers

import (
	"net/http"

	"bookstore/internal/identity"

	"github.com/gin-gonic/gin"
)

// UserHandler covers the admin user-management surface.
type UserHandler struct {
	identity *identity.Service
}

func NewUserHandler(ident *identity.Service) *UserHandler {
	return &UserHandler{identity: ident}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.identity.List()
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.identity.UpdateRole(c.Param("login"), req.Role); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *UserHandler) Remove(c *gin.Context) {
	if err := h.identity.Remove(c.Param("login")); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
