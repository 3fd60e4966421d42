package router

import (
	"log"

	"bookstore/internal/handlers"
	"bookstore/internal/identity"
	"bookstore/internal/middleware"
	"bookstore/internal/services"
	"bookstore/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gdb *gorm.DB) {
	cache, err := utils.NewCache(128)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	ident := identity.NewService(gdb)
	catalog := services.NewCatalogService(gdb)
	reviews := services.NewReviewService(gdb)
	reactions := services.NewReactionService(gdb)
	ratings := services.NewRatingService(gdb)
	purchases := services.NewPurchaseService(gdb)
	messages := services.NewMessageService(gdb)

	// Handlers
	authHandler := handlers.NewAuthHandler(ident)
	bookHandler := handlers.NewBookHandler(catalog, reviews, ratings, purchases, reactions, cache)
	reviewHandler := handlers.NewReviewHandler(reviews, reactions)
	ratingHandler := handlers.NewRatingHandler(ratings)
	purchaseHandler := handlers.NewPurchaseHandler(purchases)
	messageHandler := handlers.NewMessageHandler(messages)
	userHandler := handlers.NewUserHandler(ident)

	// Public Routes
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	r.GET("/categories", bookHandler.ListCategories)
	r.GET("/categories/:name/stats", bookHandler.CategoryStats)
	r.GET("/c/:name/books", bookHandler.ListBooks) // ?filter=price_asc|price_desc|popularity|rating|reviews
	r.GET("/books/:id", bookHandler.Detail)
	r.GET("/books/:id/reviews", reviewHandler.Thread)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.POST("/books/:id/reviews", reviewHandler.Create)
		authorized.POST("/reviews/:id/react", reviewHandler.React)
		authorized.POST("/books/:id/rate", ratingHandler.Rate)
		authorized.POST("/books/:id/purchase", purchaseHandler.Purchase)
		authorized.POST("/checkout", purchaseHandler.Checkout)
		authorized.GET("/purchases", purchaseHandler.History)
		authorized.POST("/messages", messageHandler.Send)
		authorized.GET("/messages", messageHandler.List)
	}

	// Admin Routes
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/categories", bookHandler.CreateCategory)
		admin.POST("/books", bookHandler.Create)
		admin.PUT("/books/:id", bookHandler.Update)
		admin.DELETE("/books/:id", bookHandler.Delete)
		admin.GET("/users", userHandler.List)
		admin.PUT("/users/:login/role", userHandler.UpdateRole)
		admin.DELETE("/users/:login", userHandler.Remove)
	}
}
