package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID *uint) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuoteRepository is a mock implementation of QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id uint) (*models.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetByIDWithCreator(ctx context.Context, id uint) (*models.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetAll(ctx context.Context) ([]*models.Quote, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) GetAllWithCreator(ctx context.Context) ([]*models.Quote, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetDistinctAuthors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockShownQuoteRepository is a mock implementation of ShownQuoteRepository
type MockShownQuoteRepository struct {
	mock.Mock
}

func (m *MockShownQuoteRepository) Add(ctx context.Context, shown *models.ShownQuote) error {
	args := m.Called(ctx, shown)
	return args.Error(0)
}

func (m *MockShownQuoteRepository) FindQuoteIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockShownQuoteRepository) ExistsForUserAndQuote(ctx context.Context, userID, quoteID uint) (bool, error) {
	args := m.Called(ctx, userID, quoteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShownQuoteRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGameHistoryRepository is a mock implementation of GameHistoryRepository
type MockGameHistoryRepository struct {
	mock.Mock
}

func (m *MockGameHistoryRepository) Append(ctx context.Context, history *models.GameHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockGameHistoryRepository) GetByUser(ctx context.Context, userID uint) ([]*models.GameHistory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.GameHistory), args.Error(1)
}

func (m *MockGameHistoryRepository) GetAll(ctx context.Context) ([]*models.GameHistory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.GameHistory), args.Error(1)
}

func (m *MockGameHistoryRepository) ExistsForQuote(ctx context.Context, quoteID uint) (bool, error) {
	args := m.Called(ctx, quoteID)
	return args.Bool(0), args.Error(1)
}

// MockRepository aggregates the per-entity mocks. WithTransaction runs
// the callback against the same mocks, so transactional expectations
// are set on the outer repositories.
type MockRepository struct {
	userRepo    *MockUserRepository
	quoteRepo   *MockQuoteRepository
	shownRepo   *MockShownQuoteRepository
	historyRepo *MockGameHistoryRepository

	transactionCount int
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		userRepo:    &MockUserRepository{},
		quoteRepo:   &MockQuoteRepository{},
		shownRepo:   &MockShownQuoteRepository{},
		historyRepo: &MockGameHistoryRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository               { return m.userRepo }
func (m *MockRepository) Quote() repositories.QuoteRepository             { return m.quoteRepo }
func (m *MockRepository) ShownQuote() repositories.ShownQuoteRepository   { return m.shownRepo }
func (m *MockRepository) GameHistory() repositories.GameHistoryRepository { return m.historyRepo }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.transactionCount++
	return fn(m)
}

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.userRepo.AssertExpectations(t)
	m.quoteRepo.AssertExpectations(t)
	m.shownRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
}
