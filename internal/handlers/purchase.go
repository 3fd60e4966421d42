package handlers

import (
	"net/http"

	"bookstore/internal/services"
	"bookstore/internal/utils"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchases *services.PurchaseService
}

func NewPurchaseHandler(purchases *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Purchase buys one unit of a book.
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	user := CurrentUser(c)
	purchase, err := h.purchases.Purchase(user.Login, utils.StringToUint(c.Param("id")))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// Checkout buys every book in the request, all-or-nothing.
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	var req struct {
		BookIDs []uint `json:"book_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	purchases, err := h.purchases.Checkout(user.Login, req.BookIDs)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchases": purchases})
}

// History lists the caller's purchases, newest first.
func (h *PurchaseHandler) History(c *gin.Context) {
	user := CurrentUser(c)
	purchases, err := h.purchases.History(user.Login)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}
