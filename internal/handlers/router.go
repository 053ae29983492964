package handlers

import (
	"net/http"

	"github.com/flatrock-dev/quotequiz-service/internal/services"
	"github.com/flatrock-dev/quotequiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	tokenService   services.TokenService
	authHandler    *AuthHandler
	quizHandler    *QuizHandler
	quoteHandler   *QuoteHandler
	userHandler    *UserHandler
	historyHandler *HistoryHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		tokenService:   serviceManager.Token(),
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), logger),
		quoteHandler:   NewQuoteHandler(serviceManager.Quote(), logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		historyHandler: NewHistoryHandler(serviceManager.History(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		authed := v1.Group("")
		authed.Use(AuthMiddleware(hm.tokenService))
		{
			// Quiz routes
			quiz := authed.Group("/quiz")
			{
				quiz.GET("/question", hm.quizHandler.GetQuestion)
				quiz.POST("/answer", hm.quizHandler.SubmitAnswer)
			}

			// Quote routes; reads are open, writes are admin-only
			quotes := authed.Group("/quotes")
			{
				quotes.GET("", hm.quoteHandler.ListQuotes)
				quotes.GET("/authors", hm.quoteHandler.ListAuthors)
				quotes.GET("/:id", hm.quoteHandler.GetQuote)

				quotes.POST("", RequireAdmin(), hm.quoteHandler.CreateQuote)
				quotes.PUT("/:id", RequireAdmin(), hm.quoteHandler.UpdateQuote)
				quotes.DELETE("/:id", RequireAdmin(), hm.quoteHandler.DeleteQuote)
			}

			// History routes for the current user
			history := authed.Group("/history")
			{
				history.GET("", hm.historyHandler.GetMyHistory)
				history.GET("/statistics", hm.historyHandler.GetMyStatistics)
				history.GET("/export", hm.historyHandler.ExportMyHistory)
			}

			// Admin routes
			admin := authed.Group("/admin", RequireAdmin())
			{
				admin.GET("/users", hm.userHandler.ListUsers)
				admin.POST("/users", hm.userHandler.CreateUser)
				admin.GET("/users/:id", hm.userHandler.GetUser)
				admin.PUT("/users/:id", hm.userHandler.UpdateUser)
				admin.PATCH("/users/:id/disable", hm.userHandler.DisableUser)
				admin.DELETE("/users/:id", hm.userHandler.DeleteUser)

				admin.GET("/history", hm.historyHandler.GetAllHistory)
				admin.GET("/users/:id/history", hm.historyHandler.GetUserHistory)
				admin.GET("/users/:id/history/export", hm.historyHandler.ExportUserHistory)
				admin.GET("/users/:id/statistics", hm.historyHandler.GetUserStatistics)
			}
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "quotequiz-service",
	})
}
