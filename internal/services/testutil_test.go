package services

import (
	"testing"

	"bookstore/internal/db"
	"bookstore/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection
// keeps sqlite's locking out of the way while still exercising real
// transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, login string) models.User {
	t.Helper()
	user := models.User{
		Login:     login,
		FirstName: "Test",
		LastName:  "User",
		Email:     login + "@example.com",
		BirthDate: "1990-01-01",
		Password:  "x",
		Role:      models.RoleClient,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func seedCategory(t *testing.T, gdb *gorm.DB, name string) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.Category{Name: name}).Error)
}

func seedBook(t *testing.T, gdb *gorm.DB, category, name string, price float64, stock int) models.Book {
	t.Helper()
	book := models.Book{
		Name:         name,
		Price:        price,
		CategoryName: category,
		Stock:        stock,
	}
	require.NoError(t, gdb.Create(&book).Error)
	return book
}

func seedReview(t *testing.T, gdb *gorm.DB, bookID uint, login, text string, parentID *uint) models.Review {
	t.Helper()
	review := models.Review{
		BookID:    bookID,
		UserLogin: login,
		Text:      text,
		ParentID:  parentID,
	}
	require.NoError(t, gdb.Create(&review).Error)
	return review
}
