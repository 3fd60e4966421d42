package middleware

import (
	"net/http"

	"bookstore/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

const sessionLoginKey = "user_login"

// LoadUser retrieves the session user and sets it on the context.
func LoadUser(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		login, ok := session.Get(sessionLoginKey).(string)
		if ok && login != "" {
			var user models.User
			if err := gdb.First(&user, "login = ?", login).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a loaded session user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// AdminRequired gates admin-only routes on the role flag.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists || !u.(*models.User).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// SetSessionLogin stores the login in the session after authentication.
func SetSessionLogin(c *gin.Context, login string) error {
	session := sessions.Default(c)
	session.Set(sessionLoginKey, login)
	return session.Save()
}

// ClearSession drops the login from the session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
