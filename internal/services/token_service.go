package services

import (
	"fmt"
	"time"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the signed bearer tokens the API
// authenticates with.
type TokenService interface {
	GenerateToken(user *models.User) (string, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims carries the identity the middleware puts on the request
// context.
type TokenClaims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

func NewTokenService(secret, issuer string) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: 24 * time.Hour,
	}
}

func (s *tokenService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
