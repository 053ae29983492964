package handlers

import (
	"fmt"
	"net/http"

	"github.com/flatrock-dev/quotequiz-service/internal/services"
	"github.com/flatrock-dev/quotequiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	BaseHandler
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService, logger utils.Logger) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler:    NewBaseHandler(logger),
		historyService: historyService,
	}
}

// GetMyHistory returns the caller's game log, newest first
func (h *HistoryHandler) GetMyHistory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.historyService.GetUserHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetMyStatistics returns the caller's aggregate results
func (h *HistoryHandler) GetMyStatistics(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.historyService.GetUserStatistics(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportMyHistory streams the caller's history as an XLSX download
func (h *HistoryHandler) ExportMyHistory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	data, err := h.historyService.ExportUserHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("history-%d.xlsx", userID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportUserHistory streams an arbitrary user's history for admins
func (h *HistoryHandler) ExportUserHistory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, err := h.historyService.ExportUserHistory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("history-%d.xlsx", id)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetAllHistory returns the full cross-user game log for admins
func (h *HistoryHandler) GetAllHistory(c *gin.Context) {
	entries, err := h.historyService.GetAllHistory(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetUserHistory returns an arbitrary user's game log for admins
func (h *HistoryHandler) GetUserHistory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	entries, err := h.historyService.GetUserHistory(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetUserStatistics returns an arbitrary user's aggregates for admins
func (h *HistoryHandler) GetUserStatistics(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	stats, err := h.historyService.GetUserStatistics(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
