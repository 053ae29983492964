package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Token    string          `json:"token"`
}

type authService struct {
	repo      repositories.Repository
	tokens    TokenService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens TokenService,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		s.logger.Warn("Registration failed: email already taken", "email", req.Email)
		return nil, ErrEmailTaken
	}

	usernameTaken, err := s.repo.User().ExistsByUsername(ctx, req.Username, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		s.logger.Warn("Registration failed: username already taken", "username", req.Username)
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully", "username", user.Username)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.EmailOrUsername)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		user, err = s.repo.User().GetByUsername(ctx, req.EmailOrUsername)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				s.logger.Warn("Login failed: no user found", "email_or_username", req.EmailOrUsername)
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	if !user.IsActive {
		s.logger.Warn("Login failed: account disabled", "email_or_username", req.EmailOrUsername)
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login failed: wrong password", "email_or_username", req.EmailOrUsername)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in successfully", "username", user.Username)

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}, nil
}
