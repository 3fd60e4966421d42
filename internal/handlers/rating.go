package handlers

import (
	"net/http"

	"bookstore/internal/services"
	"bookstore/internal/utils"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Rate upserts the caller's star rating and returns the recomputed
// aggregate view.
func (h *RatingHandler) Rate(c *gin.Context) {
	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := CurrentUser(c)
	bookID := utils.StringToUint(c.Param("id"))
	if err := h.ratings.RateBook(user.Login, bookID, req.Rating); err != nil {
		Fail(c, err)
		return
	}

	avg, err := h.ratings.Average(bookID)
	if err != nil {
		Fail(c, err)
		return
	}
	votes, err := h.ratings.VoteCount(bookID)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"average_rating": avg,
		"vote_count":     votes,
		"user_rating":    req.Rating,
	})
}
