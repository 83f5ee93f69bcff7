package delivery

import (
	"errors"
	"net/http"

	insightdomain "dealflow-backend/internal/insight/domain"
	insightdto "dealflow-backend/internal/insight/dto"
	"dealflow-backend/internal/insight/usecase"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	ingestUsecase usecase.IngestUsecase
}

func NewInsightHandler(ingestUsecase usecase.IngestUsecase) *InsightHandler {
	return &InsightHandler{
		ingestUsecase: ingestUsecase,
	}
}

// IngestGong handles parsed Gong call webhooks
func (h *InsightHandler) IngestGong(c *gin.Context) {
	h.ingest(c, insightdomain.SourceGong)
}

// IngestGranola handles parsed Granola note webhooks
func (h *InsightHandler) IngestGranola(c *gin.Context) {
	h.ingest(c, insightdomain.SourceGranola)
}

func (h *InsightHandler) ingest(c *gin.Context, source insightdomain.TranscriptSource) {
	var req insightdto.IngestTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.ingestUsecase.IngestTranscript(source, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrOpportunityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetOpportunityInsights returns the consolidated snapshot and raw meetings
func (h *InsightHandler) GetOpportunityInsights(c *gin.Context) {
	resp, err := h.ingestUsecase.GetOpportunityInsights(c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrOpportunityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TriggerConsolidation queues a fresh consolidation run
func (h *InsightHandler) TriggerConsolidation(c *gin.Context) {
	if err := h.ingestUsecase.TriggerConsolidation(c.GetString("userID"), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrOpportunityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "consolidation queued"})
}
