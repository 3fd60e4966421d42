package handlers

import (
	"net/http"

	"bookstore/internal/services"
	"bookstore/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews   *services.ReviewService
	reactions *services.ReactionService
}

func NewReviewHandler(reviews *services.ReviewService, reactions *services.ReactionService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, reactions: reactions}
}

// Create posts a root review or a reply on a book.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	review, err := h.reviews.AddReview(utils.StringToUint(c.Param("id")), user.Login, req.Text, req.ParentID)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Thread returns the review forest for a book.
func (h *ReviewHandler) Thread(c *gin.Context) {
	thread, err := h.reviews.Thread(utils.StringToUint(c.Param("id")))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": thread})
}

// React records a like or dislike and returns the fresh counters.
func (h *ReviewHandler) React(c *gin.Context) {
	var req struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	likes, dislikes, err := h.reactions.SetReaction(user.Login, utils.StringToUint(c.Param("id")), req.Kind)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes, "dislikes": dislikes})
}
