package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
)

func testHistoryRecords() []*models.GameHistory {
	return []*models.GameHistory{
		{
			ID:             3,
			UserID:         7,
			QuoteID:        1,
			QuizMode:       models.ModeBinary,
			SelectedAnswer: "Franklin D. Roosevelt",
			IsCorrect:      true,
			AnsweredAt:     time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
			Quote:          models.Quote{ID: 1, QuoteText: "The only thing we have to fear is fear itself.", AuthorName: "Franklin D. Roosevelt"},
		},
		{
			ID:             2,
			UserID:         7,
			QuoteID:        2,
			QuizMode:       models.ModeMultipleChoice,
			SelectedAnswer: "Aristotle",
			IsCorrect:      false,
			AnsweredAt:     time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
			Quote:          models.Quote{ID: 2, QuoteText: "Life is what happens when you're busy making other plans.", AuthorName: "John Lennon"},
		},
		{
			ID:             1,
			UserID:         7,
			QuoteID:        3,
			QuizMode:       models.ModeBinary,
			SelectedAnswer: "No",
			IsCorrect:      true,
			AnsweredAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			Quote:          models.Quote{ID: 3, QuoteText: "The only impossible journey is the one you never begin.", AuthorName: "Tony Robbins"},
		},
	}
}

func newTestHistoryService(repo *MockRepository) HistoryService {
	return NewHistoryService(repo, testLogger())
}

func TestHistoryService_GetUserStatistics(t *testing.T) {
	repo := newMockRepository()
	svc := newTestHistoryService(repo)

	user := &models.User{ID: 7, Username: "alice"}
	repo.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
	repo.historyRepo.On("GetByUser", mock.Anything, uint(7)).Return(testHistoryRecords(), nil)

	stats, err := svc.GetUserStatistics(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalGames)
	assert.Equal(t, int64(2), stats.CorrectAnswers)
	assert.Equal(t, int64(1), stats.WrongAnswers)
	assert.Equal(t, int64(2), stats.BinaryGames)
	assert.Equal(t, int64(1), stats.MultipleChoiceGames)
	assert.InDelta(t, 66.67, stats.SuccessRate, 0.001)
}

func TestHistoryService_GetUserStatistics_NoGames(t *testing.T) {
	repo := newMockRepository()
	svc := newTestHistoryService(repo)

	user := &models.User{ID: 7, Username: "alice"}
	repo.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
	repo.historyRepo.On("GetByUser", mock.Anything, uint(7)).Return([]*models.GameHistory{}, nil)

	stats, err := svc.GetUserStatistics(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalGames)
	assert.Equal(t, float64(0), stats.SuccessRate)
}

func TestHistoryService_GetUserHistory_PopulatesQuoteFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestHistoryService(repo)

	user := &models.User{ID: 7, Username: "alice"}
	repo.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
	repo.historyRepo.On("GetByUser", mock.Anything, uint(7)).Return(testHistoryRecords(), nil)

	entries, err := svc.GetUserHistory(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Franklin D. Roosevelt", entries[0].AuthorName)
	assert.Equal(t, "The only thing we have to fear is fear itself.", entries[0].QuoteText)
	assert.Equal(t, "Binary", entries[0].QuizMode)
}

func TestHistoryService_ExportUserHistory(t *testing.T) {
	repo := newMockRepository()
	svc := newTestHistoryService(repo)

	user := &models.User{ID: 7, Username: "alice"}
	repo.userRepo.On("GetByID", mock.Anything, uint(7)).Return(user, nil)
	repo.historyRepo.On("GetByUser", mock.Anything, uint(7)).Return(testHistoryRecords(), nil)

	data, err := svc.ExportUserHistory(context.Background(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("History")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Quote", "Author", "Mode", "Selected Answer", "Correct", "Answered At"}, rows[0])
	assert.Equal(t, "Franklin D. Roosevelt", rows[1][1])
}
