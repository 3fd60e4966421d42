package handlers

import (
	"net/http"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/services"
	"bookstore/internal/utils"

	"github.com/gin-gonic/gin"
)

const categoriesCacheKey = "categories"

type BookHandler struct {
	catalog   *services.CatalogService
	reviews   *services.ReviewService
	ratings   *services.RatingService
	purchases *services.PurchaseService
	reactions *services.ReactionService
	cache     *utils.Cache
}

func NewBookHandler(catalog *services.CatalogService, reviews *services.ReviewService, ratings *services.RatingService, purchases *services.PurchaseService, reactions *services.ReactionService, cache *utils.Cache) *BookHandler {
	return &BookHandler{
		catalog:   catalog,
		reviews:   reviews,
		ratings:   ratings,
		purchases: purchases,
		reactions: reactions,
		cache:     cache,
	}
}

// ListCategories serves the shelf list. Categories are immutable, so a
// short cache is safe here; book listings are never cached.
func (h *BookHandler) ListCategories(c *gin.Context) {
	if cached := h.cache.Get(categoriesCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}
	cats, err := h.catalog.Categories()
	if err != nil {
		Fail(c, err)
		return
	}
	h.cache.Set(categoriesCacheKey, cats, 5*time.Minute)
	c.JSON(http.StatusOK, cats)
}

func (h *BookHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.catalog.CreateCategory(req.Name)
	if err != nil {
		Fail(c, err)
		return
	}
	h.cache.Delete(categoriesCacheKey)
	c.JSON(http.StatusCreated, cat)
}

func (h *BookHandler) CategoryStats(c *gin.Context) {
	stats, err := h.catalog.Stats(c.Param("name"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListBooks serves one category's books in the order the filter asks for.
func (h *BookHandler) ListBooks(c *gin.Context) {
	mode := services.ParseFilterMode(c.Query("filter"))
	books, err := h.catalog.ListBooks(c.Param("name"), mode)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "filter": mode})
}

// Detail assembles the book page: live rating aggregates, purchase count
// and the full review thread with rendered bodies. The current user's own
// rating rides along when logged in.
func (h *BookHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	book, err := h.catalog.Book(id)
	if err != nil {
		Fail(c, err)
		return
	}
	avg, err := h.ratings.Average(id)
	if err != nil {
		Fail(c, err)
		return
	}
	votes, err := h.ratings.VoteCount(id)
	if err != nil {
		Fail(c, err)
		return
	}
	bought, err := h.purchases.CountForBook(id)
	if err != nil {
		Fail(c, err)
		return
	}
	thread, err := h.reviews.Thread(id)
	if err != nil {
		Fail(c, err)
		return
	}

	resp := gin.H{
		"book":           book,
		"average_rating": avg,
		"vote_count":     votes,
		"purchase_count": bought,
		"reviews":        renderThread(thread, h.reactions, CurrentUser(c)),
	}
	if user := CurrentUser(c); user != nil {
		rating, err := h.ratings.UserRating(user.Login, id)
		if err != nil {
			Fail(c, err)
			return
		}
		resp["user_rating"] = rating
	}
	c.JSON(http.StatusOK, resp)
}

// renderThread converts the review forest to the response shape, adding
// sanitized HTML bodies and, for logged-in readers, their own reaction.
func renderThread(nodes []*services.ReviewNode, reactions *services.ReactionService, user *models.User) []gin.H {
	out := make([]gin.H, 0, len(nodes))
	for _, n := range nodes {
		item := gin.H{
			"review":  n.Review,
			"html":    utils.RenderMarkdown(n.Review.Text),
			"replies": renderThread(n.Replies, reactions, user),
		}
		if user != nil {
			if kind, err := reactions.UserReaction(user.Login, n.Review.ID); err == nil && kind != nil {
				item["user_reaction"] = *kind
			}
		}
		out = append(out, item)
	}
	return out
}

func (h *BookHandler) Create(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Price        float64 `json:"price"`
		Description  string  `json:"description"`
		CategoryName string  `json:"category_name" binding:"required"`
		CoverPath    *string `json:"cover_path"`
		Stock        int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book := models.Book{
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		CategoryName: req.CategoryName,
		CoverPath:    req.CoverPath,
		Stock:        req.Stock,
	}
	if err := h.catalog.AddBook(&book); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		CoverPath   *string `json:"cover_path"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := utils.StringToUint(c.Param("id"))
	if err := h.catalog.UpdateBook(id, req.Name, req.Price, req.Description, req.CoverPath, req.Stock); err != nil {
		Fail(c, err)
		return
	}
	book, err := h.catalog.Book(id)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteBook(utils.StringToUint(c.Param("id"))); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
