package delivery

import (
	"net/http"
	"strconv"

	"dealflow-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	syncUsecase usecase.SyncUsecase
}

func NewCalendarHandler(syncUsecase usecase.SyncUsecase) *CalendarHandler {
	return &CalendarHandler{
		syncUsecase: syncUsecase,
	}
}

func (h *CalendarHandler) GetEvents(c *gin.Context) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	events, total, err := h.syncUsecase.GetEvents(c.GetString("userID"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

// TriggerSync runs a sync pass for the authenticated user on demand
func (h *CalendarHandler) TriggerSync(c *gin.Context) {
	if err := h.syncUsecase.SyncUser(c.Request.Context(), c.GetString("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sync completed"})
}

func (h *CalendarHandler) GetSyncStatus(c *gin.Context) {
	state, err := h.syncUsecase.GetSyncStatus(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync state yet"})
		return
	}

	c.JSON(http.StatusOK, state)
}
