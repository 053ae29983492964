package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// UserService is the admin-facing roster management surface.
type UserService interface {
	GetAll(ctx context.Context) ([]*UserResponse, error)
	GetByID(ctx context.Context, id uint) (*UserResponse, error)
	Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*UserResponse, error)
	Disable(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Role     string `json:"role" validate:"required,user_role"`
}

type UpdateUserRequest struct {
	Username    string         `json:"username" validate:"required,min=3,max=50"`
	Email       string         `json:"email" validate:"required,email"`
	Role        string         `json:"role" validate:"omitempty,user_role"`
	IsActive    bool           `json:"is_active"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
}

type UserResponse struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	IsActive    bool            `json:"is_active"`
	Preferences datatypes.JSON  `json:"preferences,omitempty"`
}

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) GetAll(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	usernameTaken, err := s.repo.User().ExistsByUsername(ctx, req.Username, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
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
		Role:         models.UserRole(req.Role),
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return toUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailTaken
	}

	usernameTaken, err := s.repo.User().ExistsByUsername(ctx, req.Username, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return nil, ErrUsernameTaken
	}

	user.Username = req.Username
	user.Email = req.Email
	user.IsActive = req.IsActive
	if req.Role != "" {
		user.Role = models.UserRole(req.Role)
	}
	if req.Preferences != nil {
		user.Preferences = req.Preferences
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", "user_id", user.ID)
	return toUserResponse(user), nil
}

func (s *userService) Disable(ctx context.Context, id uint) error {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	user.IsActive = false
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to disable user: %w", err)
	}

	s.logger.Info("User disabled", "user_id", id)
	return nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.User().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActive,
		Preferences: user.Preferences,
	}
}
