package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
)

// HistoryService exposes the append-only game log: per-user history,
// the admin-wide feed, aggregate statistics, and spreadsheet export.
type HistoryService interface {
	GetUserHistory(ctx context.Context, userID uint) ([]*HistoryEntry, error)
	GetAllHistory(ctx context.Context) ([]*HistoryEntry, error)
	GetUserStatistics(ctx context.Context, userID uint) (*UserStatistics, error)
	ExportUserHistory(ctx context.Context, userID uint) ([]byte, error)
}

type HistoryEntry struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Username       string    `json:"username,omitempty"`
	QuoteID        uint      `json:"quote_id"`
	QuoteText      string    `json:"quote_text"`
	AuthorName     string    `json:"author_name"`
	QuizMode       string    `json:"quiz_mode"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
}

type UserStatistics struct {
	TotalGames          int64   `json:"total_games"`
	CorrectAnswers      int64   `json:"correct_answers"`
	WrongAnswers        int64   `json:"wrong_answers"`
	SuccessRate         float64 `json:"success_rate"`
	BinaryGames         int64   `json:"binary_games"`
	MultipleChoiceGames int64   `json:"multiple_choice_games"`
}

type historyService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewHistoryService(repo repositories.Repository, logger *slog.Logger) HistoryService {
	return &historyService{
		repo:   repo,
		logger: logger,
	}
}

func (s *historyService) GetUserHistory(ctx context.Context, userID uint) ([]*HistoryEntry, error) {
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	records, err := s.repo.GameHistory().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user history: %w", err)
	}
	return toHistoryEntries(records), nil
}

func (s *historyService) GetAllHistory(ctx context.Context) ([]*HistoryEntry, error) {
	records, err := s.repo.GameHistory().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return toHistoryEntries(records), nil
}

func (s *historyService) GetUserStatistics(ctx context.Context, userID uint) (*UserStatistics, error) {
	entries, err := s.GetUserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{}
	for _, e := range entries {
		stats.TotalGames++
		if e.IsCorrect {
			stats.CorrectAnswers++
		} else {
			stats.WrongAnswers++
		}
		switch models.QuizMode(e.QuizMode) {
		case models.ModeMultipleChoice:
			stats.MultipleChoiceGames++
		default:
			stats.BinaryGames++
		}
	}

	if stats.TotalGames > 0 {
		rate := float64(stats.CorrectAnswers) / float64(stats.TotalGames) * 100
		stats.SuccessRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// ExportUserHistory renders the user's history as an XLSX workbook.
func (s *historyService) ExportUserHistory(ctx context.Context, userID uint) ([]byte, error) {
	entries, err := s.GetUserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "History"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"Quote", "Author", "Mode", "Selected Answer", "Correct", "Answered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, e := range entries {
		values := []interface{}{
			e.QuoteText,
			e.AuthorName,
			e.QuizMode,
			e.SelectedAnswer,
			e.IsCorrect,
			e.AnsweredAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("History exported", "user_id", userID, "rows", len(entries))
	return buf.Bytes(), nil
}

func toHistoryEntries(records []*models.GameHistory) []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(records))
	for _, r := range records {
		entry := &HistoryEntry{
			ID:             r.ID,
			UserID:         r.UserID,
			QuoteID:        r.QuoteID,
			QuizMode:       string(r.QuizMode),
			SelectedAnswer: r.SelectedAnswer,
			IsCorrect:      r.IsCorrect,
			AnsweredAt:     r.AnsweredAt,
		}
		if r.Quote.ID != 0 {
			entry.QuoteText = r.Quote.QuoteText
			entry.AuthorName = r.Quote.AuthorName
		}
		if r.User.ID != 0 {
			entry.Username = r.User.Username
		}
		entries = append(entries, entry)
	}
	return entries
}
