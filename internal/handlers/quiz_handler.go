package handlers

import (
	"net/http"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
	"github.com/flatrock-dev/quotequiz-service/internal/services"
	"github.com/flatrock-dev/quotequiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// GetQuestion returns the next unseen question for the caller.
// The mode query parameter selects Binary or MultipleChoice; anything
// else falls back to Binary.
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	mode := models.ParseQuizMode(c.Query("mode"))
	h.LogRequest(c, "Getting quiz question", "mode", mode)

	question, err := h.quizService.NextQuestion(c.Request.Context(), userID, mode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// SubmitAnswer grades the caller's answer and records the game
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.QuizMode = models.ParseQuizMode(string(req.QuizMode))

	result, err := h.quizService.SubmitAnswer(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
