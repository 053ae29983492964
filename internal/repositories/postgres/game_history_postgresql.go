package postgres

import (
	"context"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"gorm.io/gorm"
)

type GameHistoryPostgreSQL struct {
	db *gorm.DB
}

func NewGameHistoryPostgreSQL(db *gorm.DB) repositories.GameHistoryRepository {
	return &GameHistoryPostgreSQL{db: db}
}

func (g *GameHistoryPostgreSQL) Append(ctx context.Context, history *models.GameHistory) error {
	return g.db.WithContext(ctx).Create(history).Error
}

func (g *GameHistoryPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.GameHistory, error) {
	var history []*models.GameHistory
	if err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Quote").
		Order("answered_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (g *GameHistoryPostgreSQL) GetAll(ctx context.Context) ([]*models.GameHistory, error) {
	var history []*models.GameHistory
	if err := g.db.WithContext(ctx).
		Preload("User").
		Preload("Quote").
		Order("answered_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (g *GameHistoryPostgreSQL) ExistsForQuote(ctx context.Context, quoteID uint) (bool, error) {
	var count int64
	if err := g.db.WithContext(ctx).
		Model(&models.GameHistory{}).
		Where("quote_id = ?", quoteID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
