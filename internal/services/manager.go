package services

import (
	"log/slog"
	"math/rand"

	"github.com/flatrock-dev/quotequiz-service/internal/cache"
	"github.com/flatrock-dev/quotequiz-service/internal/events"
	"github.com/flatrock-dev/quotequiz-service/internal/repositories"
	"github.com/flatrock-dev/quotequiz-service/internal/validator"
)

// ServiceManager bundles the service layer for injection into handlers.
type ServiceManager interface {
	Auth() AuthService
	Token() TokenService
	Quiz() QuizService
	Quote() QuoteService
	User() UserService
	History() HistoryService
}

type serviceManager struct {
	authService    AuthService
	tokenService   TokenService
	quizService    QuizService
	quoteService   QuoteService
	userService    UserService
	historyService HistoryService
}

type ManagerConfig struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	Publisher events.Publisher
	Logger    *slog.Logger
	Validator *validator.Validator
	JWTSecret string
	JWTIssuer string

	// Rng is optional; nil seeds from the clock.
	Rng *rand.Rand
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	tokenService := NewTokenService(cfg.JWTSecret, cfg.JWTIssuer)
	return &serviceManager{
		authService:    NewAuthService(cfg.Repo, tokenService, cfg.Logger, cfg.Validator),
		tokenService:   tokenService,
		quizService:    NewQuizService(cfg.Repo, cfg.Publisher, cfg.Logger, cfg.Validator, cfg.Rng),
		quoteService:   NewQuoteService(cfg.Repo, cfg.Cache, cfg.Logger, cfg.Validator),
		userService:    NewUserService(cfg.Repo, cfg.Logger, cfg.Validator),
		historyService: NewHistoryService(cfg.Repo, cfg.Logger),
	}
}

func (m *serviceManager) Auth() AuthService       { return m.authService }
func (m *serviceManager) Token() TokenService     { return m.tokenService }
func (m *serviceManager) Quiz() QuizService       { return m.quizService }
func (m *serviceManager) Quote() QuoteService     { return m.quoteService }
func (m *serviceManager) User() UserService       { return m.userService }
func (m *serviceManager) History() HistoryService { return m.historyService }
