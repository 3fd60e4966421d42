package services

import (
	"errors"

	"bookstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(gdb *gorm.DB) *RatingService {
	return &RatingService{db: gdb}
}

// RateBook upserts the user's 1-5 rating for a book. A repeat rating
// replaces the previous value, never adds a second row.
func (s *RatingService) RateBook(login string, bookID uint, value int) error {
	if value < 1 || value > 5 {
		return ErrInvalidRating
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return storageErr("load book", err)
		}
		rating := models.BookRating{UserLogin: login, BookID: bookID, Rating: value}
		return storageErr("upsert rating", tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_login"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"rating": value}),
		}).Create(&rating).Error)
	})
}

// Average is computed live from the stored ratings so replacements never
// drift the mean. No ratings means 0.
func (s *RatingService) Average(bookID uint) (float64, error) {
	var avg float64
	if err := s.db.Model(&models.BookRating{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, storageErr("average rating", err)
	}
	return avg, nil
}

func (s *RatingService) VoteCount(bookID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.BookRating{}).
		Where("book_id = ?", bookID).
		Count(&count).Error; err != nil {
		return 0, storageErr("count ratings", err)
	}
	return count, nil
}

// UserRating returns the user's rating for a book, or nil when the user
// has not rated it.
func (s *RatingService) UserRating(login string, bookID uint) (*int, error) {
	var rating models.BookRating
	err := s.db.Where("user_login = ? AND book_id = ?", login, bookID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load rating", err)
	}
	return &rating.Rating, nil
}
