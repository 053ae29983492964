package handlers

import (
	"net/http"

	"github.com/flatrock-dev/quotequiz-service/internal/services"
	"github.com/flatrock-dev/quotequiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	BaseHandler
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService, logger utils.Logger) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler:  NewBaseHandler(logger),
		quoteService: quoteService,
	}
}

// ListQuotes returns every quote with its creator
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.quoteService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// GetQuote returns a single quote by ID
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ListAuthors returns the distinct author names
func (h *QuoteHandler) ListAuthors(c *gin.Context) {
	authors, err := h.quoteService.GetAuthors(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// CreateQuote adds a quote to the bank
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// UpdateQuote replaces a quote's text and author
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// DeleteQuote removes a quote that has no recorded games
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Quote deleted"})
}
