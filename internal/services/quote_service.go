package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flatrock-dev/quotequiz-service/internal/cache"
	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
)

const (
	authorsCacheKey = "quotes:authors"
	authorsCacheTTL = 10 * time.Minute
)

// QuoteService is the admin-facing quote bank surface. All reads are
// open to any authenticated user; writes are admin-only at the router.
type QuoteService interface {
	GetAll(ctx context.Context) ([]*QuoteResponse, error)
	GetByID(ctx context.Context, id uint) (*QuoteResponse, error)
	GetAuthors(ctx context.Context) ([]string, error)
	Create(ctx context.Context, createdByUserID uint, req *CreateQuoteRequest) (*QuoteResponse, error)
	Update(ctx context.Context, id uint, req *UpdateQuoteRequest) (*QuoteResponse, error)
	Delete(ctx context.Context, id uint) error
}

type CreateQuoteRequest struct {
	QuoteText  string `json:"quote_text" validate:"required,max=1000"`
	AuthorName string `json:"author_name" validate:"required,max=100"`
}

type UpdateQuoteRequest struct {
	QuoteText  string `json:"quote_text" validate:"required,max=1000"`
	AuthorName string `json:"author_name" validate:"required,max=100"`
}

type QuoteResponse struct {
	ID                uint      `json:"id"`
	QuoteText         string    `json:"quote_text"`
	AuthorName        string    `json:"author_name"`
	CreatedByUserName string    `json:"created_by_user_name"`
	CreatedAt         time.Time `json:"created_at"`
}

type quoteService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuoteService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *validator.Validator,
) QuoteService {
	return &quoteService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *quoteService) GetAll(ctx context.Context) ([]*QuoteResponse, error) {
	quotes, err := s.repo.Quote().GetAllWithCreator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	responses := make([]*QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		responses = append(responses, toQuoteResponse(q))
	}
	return responses, nil
}

func (s *quoteService) GetByID(ctx context.Context, id uint) (*QuoteResponse, error) {
	quote, err := s.repo.Quote().GetByIDWithCreator(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return toQuoteResponse(quote), nil
}

// GetAuthors returns the distinct, sorted author names. The list is
// cached; every quote write invalidates it.
func (s *quoteService) GetAuthors(ctx context.Context) ([]string, error) {
	var authors []string
	if err := s.cache.Get(ctx, authorsCacheKey, &authors); err == nil {
		return authors, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Author cache read failed", "error", err)
	}

	authors, err := s.repo.Quote().GetDistinctAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}

	if err := s.cache.Set(ctx, authorsCacheKey, authors, authorsCacheTTL); err != nil {
		s.logger.Warn("Author cache write failed", "error", err)
	}
	return authors, nil
}

func (s *quoteService) Create(ctx context.Context, createdByUserID uint, req *CreateQuoteRequest) (*QuoteResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, createdByUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	quote := &models.Quote{
		QuoteText:       req.QuoteText,
		AuthorName:      req.AuthorName,
		CreatedByUserID: createdByUserID,
	}

	if err := s.repo.Quote().Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.invalidateAuthors(ctx)
	s.logger.Info("Quote created", "quote_id", quote.ID, "author", quote.AuthorName)

	resp := toQuoteResponse(quote)
	resp.CreatedByUserName = user.Username
	return resp, nil
}

func (s *quoteService) Update(ctx context.Context, id uint, req *UpdateQuoteRequest) (*QuoteResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quote, err := s.repo.Quote().GetByIDWithCreator(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	quote.QuoteText = req.QuoteText
	quote.AuthorName = req.AuthorName

	if err := s.repo.Quote().Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	s.invalidateAuthors(ctx)
	s.logger.Info("Quote updated", "quote_id", quote.ID)

	return toQuoteResponse(quote), nil
}

func (s *quoteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Quote().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to get quote: %w", err)
	}

	// Quotes referenced by history are immutable
	inUse, err := s.repo.GameHistory().ExistsForQuote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check quote usage: %w", err)
	}
	if inUse {
		return ErrQuoteInUse
	}

	if err := s.repo.Quote().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	s.invalidateAuthors(ctx)
	s.logger.Info("Quote deleted", "quote_id", id)
	return nil
}

func (s *quoteService) invalidateAuthors(ctx context.Context) {
	if err := s.cache.Delete(ctx, authorsCacheKey); err != nil {
		s.logger.Warn("Author cache invalidation failed", "error", err)
	}
}

func toQuoteResponse(quote *models.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:                quote.ID,
		QuoteText:         quote.QuoteText,
		AuthorName:        quote.AuthorName,
		CreatedByUserName: quote.CreatedBy.Username,
		CreatedAt:         quote.CreatedAt,
	}
}
