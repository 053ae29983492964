package postgres

import (
	"context"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"gorm.io/gorm"
)

type QuotePostgreSQL struct {
	db *gorm.DB
}

func NewQuotePostgreSQL(db *gorm.DB) repositories.QuoteRepository {
	return &QuotePostgreSQL{db: db}
}

func (q *QuotePostgreSQL) Create(ctx context.Context, quote *models.Quote) error {
	return q.db.WithContext(ctx).Create(quote).Error
}

func (q *QuotePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := q.db.WithContext(ctx).First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (q *QuotePostgreSQL) GetByIDWithCreator(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := q.db.WithContext(ctx).Preload("CreatedBy").First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (q *QuotePostgreSQL) GetAll(ctx context.Context) ([]*models.Quote, error) {
	var quotes []*models.Quote
	if err := q.db.WithContext(ctx).Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (q *QuotePostgreSQL) GetAllWithCreator(ctx context.Context) ([]*models.Quote, error) {
	var quotes []*models.Quote
	if err := q.db.WithContext(ctx).Preload("CreatedBy").Order("id").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (q *QuotePostgreSQL) Update(ctx context.Context, quote *models.Quote) error {
	return q.db.WithContext(ctx).Save(quote).Error
}

func (q *QuotePostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Quote{}, id).Error
}

func (q *QuotePostgreSQL) GetDistinctAuthors(ctx context.Context) ([]string, error) {
	var authors []string
	if err := q.db.WithContext(ctx).
		Model(&models.Quote{}).
		Distinct("author_name").
		Order("author_name").
		Pluck("author_name", &authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}
