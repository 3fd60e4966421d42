package services

import (
	"errors"

	"bookstore/internal/models"

	"gorm.io/gorm"
)

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(gdb *gorm.DB) *PurchaseService {
	return &PurchaseService{db: gdb}
}

// Purchase decrements stock and appends a ledger row as one atomic unit.
// The guarded UPDATE serializes racing buyers: with one unit left, exactly
// one of two concurrent purchases sees a row affected, and stock can never
// go below zero. On failure nothing is written.
func (s *PurchaseService) Purchase(login string, bookID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return purchaseOne(tx, login, bookID, &purchase)
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func purchaseOne(tx *gorm.DB, login string, bookID uint, out *models.Purchase) error {
	res := tx.Model(&models.Book{}).
		Where("id = ? AND stock > 0", bookID).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return storageErr("decrement stock", res.Error)
	}
	if res.RowsAffected == 0 {
		// No row touched: either the book is gone or the shelf is empty.
		var book models.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr("load book", err)
		}
		return ErrInsufficientStock
	}

	*out = models.Purchase{UserLogin: login, BookID: bookID}
	return storageErr("record purchase", tx.Create(out).Error)
}

// Checkout purchases every listed book in a single all-or-nothing
// transaction: one empty shelf rolls the whole order back.
func (s *PurchaseService) Checkout(login string, ids []uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchases = purchases[:0]
		for _, id := range ids {
			var p models.Purchase
			if err := purchaseOne(tx, login, id, &p); err != nil {
				return err
			}
			purchases = append(purchases, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// History lists the user's ledger entries, newest first.
func (s *PurchaseService) History(login string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := s.db.Where("user_login = ?", login).
		Order("created_at DESC, id DESC").
		Find(&purchases).Error; err != nil {
		return nil, storageErr("list purchases", err)
	}
	return purchases, nil
}

// CountForBook reports how many times a book has been bought.
func (s *PurchaseService) CountForBook(bookID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Purchase{}).
		Where("book_id = ?", bookID).
		Count(&count).Error; err != nil {
		return 0, storageErr("count purchases", err)
	}
	return count, nil
}
