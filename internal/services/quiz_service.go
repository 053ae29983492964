package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/flatrock-dev/quotequiz-service/internal/events"
	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
)

// QuizService selects questions, formats them for the requested mode
// and grades submitted answers. The service itself is stateless; all
// mutable state lives in the repositories.
type QuizService interface {
	NextQuestion(ctx context.Context, userID uint, mode models.QuizMode) (*QuizQuestion, error)
	SubmitAnswer(ctx context.Context, userID uint, req *SubmitAnswerRequest) (*AnswerResult, error)
}

// QuizQuestion is transient: produced fresh on each request, never
// stored. Binary questions carry a DisplayedAuthor and no options;
// multiple-choice questions carry three options and no displayed author.
type QuizQuestion struct {
	QuoteID         uint            `json:"quote_id"`
	QuoteText       string          `json:"quote_text"`
	DisplayedAuthor string          `json:"displayed_author"`
	Options         []string        `json:"options"`
	QuizMode        models.QuizMode `json:"quiz_mode"`
}

type SubmitAnswerRequest struct {
	QuoteID         uint            `json:"quote_id" validate:"required"`
	SelectedAnswer  string          `json:"selected_answer" validate:"required,max=100"`
	QuizMode        models.QuizMode `json:"quiz_mode" validate:"required,quiz_mode"`
	DisplayedAuthor string          `json:"displayed_author" validate:"max=100"`
}

type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Message       string `json:"message"`
}

type quizService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator

	// rand.Rand is not safe for concurrent use
	mu  sync.Mutex
	rng *rand.Rand
}

func NewQuizService(
	repo repositories.Repository,
	publisher events.Publisher,
	logger *slog.Logger,
	validator *validator.Validator,
	rng *rand.Rand,
) QuizService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &quizService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		rng:       rng,
	}
}

func (s *quizService) NextQuestion(ctx context.Context, userID uint, mode models.QuizMode) (*QuizQuestion, error) {
	shownIDs, err := s.repo.ShownQuote().FindQuoteIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shown quotes: %w", err)
	}

	allQuotes, err := s.repo.Quote().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes: %w", err)
	}

	unseen := filterUnseen(allQuotes, shownIDs)

	if len(unseen) == 0 {
		// User has seen all quotes - reset their progress. The bulk
		// delete is a single statement, so the reset commits on its
		// own and stays idempotent.
		if err := s.repo.ShownQuote().DeleteAllForUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to reset shown quotes: %w", err)
		}

		s.logger.Info("Quote pool exhausted, progress reset", "user_id", userID)
		unseen = allQuotes
	}

	if len(unseen) == 0 {
		return nil, ErrNoQuotesExist
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected := unseen[s.rng.Intn(len(unseen))]

	if mode == models.ModeMultipleChoice {
		return s.formatMultipleChoiceQuestion(selected, allQuotes)
	}
	return s.formatBinaryQuestion(selected, allQuotes), nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, userID uint, req *SubmitAnswerRequest) (*AnswerResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quote, err := s.repo.Quote().GetByID(ctx, req.QuoteID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	isCorrect := gradeAnswer(quote, req)
	answeredAt := time.Now().UTC()

	history := &models.GameHistory{
		UserID:         userID,
		QuoteID:        req.QuoteID,
		QuizMode:       req.QuizMode,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		AnsweredAt:     answeredAt,
	}

	// History append and seen-quote insert commit together; a lost
	// race on the (user, quote) unique index counts as already seen.
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.GameHistory().Append(ctx, history); err != nil {
			return fmt.Errorf("failed to append game history: %w", err)
		}

		alreadyShown, err := txRepo.ShownQuote().ExistsForUserAndQuote(ctx, userID, req.QuoteID)
		if err != nil {
			return fmt.Errorf("failed to check shown quote: %w", err)
		}

		if !alreadyShown {
			shown := &models.ShownQuote{UserID: userID, QuoteID: req.QuoteID}
			if err := txRepo.ShownQuote().Add(ctx, shown); err != nil {
				if !repositories.IsDuplicateKeyError(err) {
					return fmt.Errorf("failed to add shown quote: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAnswerSubmitted(ctx, history)

	message := fmt.Sprintf("Correct! The right answer is: %s", quote.AuthorName)
	if !isCorrect {
		message = fmt.Sprintf("Sorry, you are wrong! The right answer is: %s", quote.AuthorName)
	}

	s.logger.Info("Answer submitted",
		"user_id", userID,
		"quote_id", req.QuoteID,
		"quiz_mode", req.QuizMode,
		"is_correct", isCorrect)

	return &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: quote.AuthorName,
		Message:       message,
	}, nil
}

func (s *quizService) publishAnswerSubmitted(ctx context.Context, history *models.GameHistory) {
	if s.publisher == nil {
		return
	}

	event := events.NewAnswerSubmittedEvent(history)
	if err := s.publisher.PublishAnswerSubmitted(ctx, event); err != nil {
		// Event delivery is best-effort; the answer is already committed.
		s.logger.Error("Failed to publish answer submitted event",
			"user_id", history.UserID,
			"quote_id", history.QuoteID,
			"error", err)
	}
}
