package repositories

import (
	"context"
	"errors"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates all per-entity repositories behind one unit of
// work. WithTransaction runs fn against a Repository bound to a single
// database transaction; the quiz engine relies on it to keep the
// history append and the seen-quote insert atomic.
type Repository interface {
	User() UserRepository
	Quote() QuoteRepository
	ShownQuote() ShownQuoteRepository
	GameHistory() GameHistoryRepository

	WithTransaction(ctx context.Context, fn func(txRepo Repository) error) error
}

// UserRepository interface for user roster operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID *uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// QuoteRepository interface for quote bank operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uint) (*models.Quote, error)
	GetByIDWithCreator(ctx context.Context, id uint) (*models.Quote, error)
	GetAll(ctx context.Context) ([]*models.Quote, error)
	GetAllWithCreator(ctx context.Context) ([]*models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) error
	Delete(ctx context.Context, id uint) error

	GetDistinctAuthors(ctx context.Context) ([]string, error)
}

// ShownQuoteRepository tracks which quotes each user has already been
// graded on.
type ShownQuoteRepository interface {
	Add(ctx context.Context, shown *models.ShownQuote) error
	FindQuoteIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	ExistsForUserAndQuote(ctx context.Context, userID, quoteID uint) (bool, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// GameHistoryRepository is append-only; answered questions are never
// mutated or removed.
type GameHistoryRepository interface {
	Append(ctx context.Context, history *models.GameHistory) error
	GetByUser(ctx context.Context, userID uint) ([]*models.GameHistory, error)
	GetAll(ctx context.Context) ([]*models.GameHistory, error)
	ExistsForQuote(ctx context.Context, quoteID uint) (bool, error)
}

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err was caused by a uniqueness
// constraint, e.g. a lost race on the (user_id, quote_id) pair.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
