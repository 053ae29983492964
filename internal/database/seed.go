package database

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@flatrock.com"
	defaultAdminPassword = "Admin123!"
)

var seedQuotes = []struct {
	text   string
	author string
}{
	{"A dreamer is one who can only find his way by moonlight, and his punishment is that he sees the dawn before the rest of the world.", "Oscar Wilde"},
	{"It has been said that democracy is the worst form of government except all the others that have been tried.", "Winston Churchill"},
	{"The only thing we have to fear is fear itself.", "Franklin D. Roosevelt"},
	{"To be yourself in a world that is constantly trying to make you something else is the greatest accomplishment.", "Ralph Waldo Emerson"},
	{"In three words I can sum up everything I've learned about life: it goes on.", "Robert Frost"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Life is what happens when you're busy making other plans.", "John Lennon"},
	{"The future belongs to those who believe in the beauty of their dreams.", "Eleanor Roosevelt"},
	{"It is during our darkest moments that we must focus to see the light.", "Aristotle"},
	{"The only impossible journey is the one you never begin.", "Tony Robbins"},
}

// Seed provisions the default admin account and the starter quote bank.
// It is a no-op when any user already exists.
func Seed(ctx context.Context, repo repositories.Repository, logger *slog.Logger) error {
	count, err := repo.User().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		admin := &models.User{
			Username:     defaultAdminUsername,
			Email:        defaultAdminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := txRepo.User().Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		for _, q := range seedQuotes {
			quote := &models.Quote{
				QuoteText:       q.text,
				AuthorName:      q.author,
				CreatedByUserID: admin.ID,
			}
			if err := txRepo.Quote().Create(ctx, quote); err != nil {
				return fmt.Errorf("failed to create quote: %w", err)
			}
		}

		logger.Info("Database seeded",
			"admin_email", admin.Email,
			"quotes", len(seedQuotes))
		return nil
	})
}
