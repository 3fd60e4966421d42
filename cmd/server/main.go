package main

import (
	"log"
	"os"

	"bookstore/internal/db"
	"bookstore/internal/identity"
	"bookstore/internal/middleware"
	"bookstore/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	// Initialize Database
	gdb, err := db.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.SeedCategories(gdb); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// Seed the default admin account
	adminLogin := os.Getenv("ADMIN_LOGIN")
	if adminLogin == "" {
		adminLogin = "admin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := identity.NewService(gdb).EnsureAdmin(adminLogin, adminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("bookstore_session", store))

	// Middleware
	r.Use(middleware.LoadUser(gdb))

	router.RegisterRoutes(r, gdb)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Bookstore server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
