package postgres

import (
	"context"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShownQuotePostgreSQL struct {
	db *gorm.DB
}

func NewShownQuotePostgreSQL(db *gorm.DB) repositories.ShownQuoteRepository {
	return &ShownQuotePostgreSQL{db: db}
}

func (s *ShownQuotePostgreSQL) Add(ctx context.Context, shown *models.ShownQuote) error {
	// ON CONFLICT DO NOTHING keeps a concurrent insert for the same
	// (user, quote) pair from aborting the surrounding transaction.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quote_id"}},
			DoNothing: true,
		}).
		Create(shown).Error
}

func (s *ShownQuotePostgreSQL) FindQuoteIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var quoteIDs []uint
	if err := s.db.WithContext(ctx).
		Model(&models.ShownQuote{}).
		Where("user_id = ?", userID).
		Pluck("quote_id", &quoteIDs).Error; err != nil {
		return nil, err
	}
	return quoteIDs, nil
}

func (s *ShownQuotePostgreSQL) ExistsForUserAndQuote(ctx context.Context, userID, quoteID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.ShownQuote{}).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ShownQuotePostgreSQL) DeleteAllForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ShownQuote{}).Error
}
