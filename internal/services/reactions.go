package services

import (
	"errors"

	"bookstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(gdb *gorm.DB) *ReactionService {
	return &ReactionService{db: gdb}
}

// SetReaction upserts the user's reaction on a review and rewrites the
// review's like/dislike counters from a full recount, all in one
// transaction. The counters are always derived, never incremented: a
// Like-to-Dislike switch must move both numbers in the same observable
// step. Returns the fresh counter values.
func (s *ReactionService) SetReaction(login string, reviewID uint, kind string) (likes, dislikes int64, err error) {
	if kind != models.ReactionLike && kind != models.ReactionDislike {
		return 0, 0, ErrInvalidReaction
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Row lock: concurrent reactions to the same review must recount
		// serially, or a later commit overwrites the counters with a stale
		// count.
		var review models.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&review, reviewID).Error; err != nil {
			return storageErr("load review", err)
		}

		reaction := models.Reaction{UserLogin: login, ReviewID: reviewID, Kind: kind}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_login"}, {Name: "review_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"reaction": kind}),
		}).Create(&reaction).Error; err != nil {
			return storageErr("upsert reaction", err)
		}

		if err := tx.Model(&models.Reaction{}).
			Where("review_id = ? AND reaction = ?", reviewID, models.ReactionLike).
			Count(&likes).Error; err != nil {
			return storageErr("count likes", err)
		}
		if err := tx.Model(&models.Reaction{}).
			Where("review_id = ? AND reaction = ?", reviewID, models.ReactionDislike).
			Count(&dislikes).Error; err != nil {
			return storageErr("count dislikes", err)
		}
		return storageErr("update counters", tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			Updates(map[string]interface{}{"likes": likes, "dislikes": dislikes}).Error)
	})
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

// UserReaction returns the user's current reaction kind, or nil when the
// user has not reacted to the review.
func (s *ReactionService) UserReaction(login string, reviewID uint) (*string, error) {
	var reaction models.Reaction
	err := s.db.Where("user_login = ? AND review_id = ?", login, reviewID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load reaction", err)
	}
	return &reaction.Kind, nil
}
