package services

import (
	"errors"

	"bookstore/internal/models"

	"gorm.io/gorm"
)

// ReviewNode is a review plus its ordered replies, recursively.
type ReviewNode struct {
	Review  models.Review `json:"review"`
	Replies []*ReviewNode `json:"replies"`
}

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(gdb *gorm.DB) *ReviewService {
	return &ReviewService{db: gdb}
}

// AddReview appends a root review or a reply. A non-nil parent must exist,
// live on the same book and have an acyclic ancestor chain, otherwise
// nothing is written.
func (s *ReviewService) AddReview(bookID uint, login, text string, parentID *uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return storageErr("load book", err)
		}
		if parentID != nil {
			if err := validateParent(tx, bookID, *parentID); err != nil {
				return err
			}
		}
		review = models.Review{
			BookID:    bookID,
			UserLogin: login,
			Text:      text,
			ParentID:  parentID,
		}
		return storageErr("create review", tx.Create(&review).Error)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// validateParent rejects reply targets that are missing, belong to another
// book, or sit on a cyclic parent chain. The visited set bounds the walk:
// a repeated id means the stored chain already loops and can never anchor
// a well-formed tree.
func validateParent(tx *gorm.DB, bookID, parentID uint) error {
	var parent models.Review
	if err := tx.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidParent
		}
		return storageErr("load parent review", err)
	}
	if parent.BookID != bookID {
		return ErrInvalidParent
	}

	seen := map[uint]bool{parent.ID: true}
	cur := parent
	for cur.ParentID != nil {
		next := *cur.ParentID
		if seen[next] {
			return ErrInvalidParent
		}
		seen[next] = true
		var ancestor models.Review
		if err := tx.First(&ancestor, next).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// dangling ancestor; the chain still terminates
				return nil
			}
			return storageErr("load ancestor review", err)
		}
		cur = ancestor
	}
	return nil
}

// Thread rebuilds the discussion forest for a book from the flat rows:
// load once in id order, index by id, then hang every node off its parent.
// A review whose parent id does not resolve is kept as a root rather than
// dropped.
func (s *ReviewService) Thread(bookID uint) ([]*ReviewNode, error) {
	var book models.Book
	if err := s.db.First(&book, bookID).Error; err != nil {
		return nil, storageErr("load book", err)
	}

	var reviews []models.Review
	if err := s.db.Where("book_id = ?", bookID).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, storageErr("list reviews", err)
	}

	nodes := make(map[uint]*ReviewNode, len(reviews))
	for i := range reviews {
		nodes[reviews[i].ID] = &ReviewNode{Review: reviews[i]}
	}

	roots := make([]*ReviewNode, 0, len(reviews))
	for i := range reviews {
		node := nodes[reviews[i].ID]
		if pid := reviews[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
			// dangling parent: surface the review as a root
		}
		roots = append(roots, node)
	}
	return roots, nil
}
