package db

import (
	"fmt"
	"log"

	"bookstore/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The returned handle is
// passed explicitly into every service; there is no package-level singleton.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=bookstore port=5432 sslmode=disable"
	}

	// TranslateError maps driver duplicate-key failures onto
	// gorm.ErrDuplicatedKey so the service layer can report conflicts.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Println("Database connection established")

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("Database migration completed")

	return gdb, nil
}

// Migrate creates or updates the schema. Split out from Open so tests can
// run it against other engines.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Book{},
		&models.Review{},
		&models.Reaction{},
		&models.BookRating{},
		&models.Purchase{},
		&models.Message{},
	)
}

// SeedCategories creates the initial shelf categories on first start.
func SeedCategories(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return nil
	}

	names := []string{"Fiction", "Non-Fiction", "Science", "Fantasy", "Mystery", "Romance", "History"}
	for _, name := range names {
		if err := gdb.Create(&models.Category{Name: name}).Error; err != nil {
			log.Printf("Failed to create category %s: %v", name, err)
		}
	}
	log.Println("Initial categories created successfully")
	return nil
}
