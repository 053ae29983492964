package postgres

import (
	"context"

	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB

	user        repositories.UserRepository
	quote       repositories.QuoteRepository
	shownQuote  repositories.ShownQuoteRepository
	gameHistory repositories.GameHistoryRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:          db,
		user:        NewUserPostgreSQL(db),
		quote:       NewQuotePostgreSQL(db),
		shownQuote:  NewShownQuotePostgreSQL(db),
		gameHistory: NewGameHistoryPostgreSQL(db),
	}
}

func (r *gormRepository) User() repositories.UserRepository { return r.user }

func (r *gormRepository) Quote() repositories.QuoteRepository { return r.quote }

func (r *gormRepository) ShownQuote() repositories.ShownQuoteRepository { return r.shownQuote }

func (r *gormRepository) GameHistory() repositories.GameHistoryRepository { return r.gameHistory }

// WithTransaction runs fn with a Repository whose operations all share
// one transaction. fn returning an error rolls everything back.
func (r *gormRepository) WithTransaction(ctx context.Context, fn func(txRepo repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
