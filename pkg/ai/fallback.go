package ai

import (
	"context"
	"fmt"
	"net"
	"strings"

	log "github.com/sirupsen/logrus"
)

// FallbackService routes consolidation across providers:
// Gemini first (better at long-context merging), fallback to Ollama on
// quota or connection errors.
type FallbackService struct {
	gemini ConsolidatorService
	ollama *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini ConsolidatorService, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// ConsolidateInsights tries Gemini first, falls back to Ollama on quota or
// connection errors
func (f *FallbackService) ConsolidateInsights(ctx context.Context, briefs []MeetingBrief) (*InsightConsolidation, error) {
	if f.gemini != nil {
		result, err := f.gemini.ConsolidateInsights(ctx, briefs)
		if err == nil {
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] Gemini quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] Gemini error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.ConsolidateInsights(ctx, briefs)
		if err == nil {
			return result, nil
		}

		// If Ollama also fails with connection error, retry Gemini once
		if isConnectionError(err) && f.gemini != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying Gemini", err)
			return f.gemini.ConsolidateInsights(ctx, briefs)
		}

		return nil, fmt.Errorf("ollama consolidation failed: %w", err)
	}

	return nil, fmt.Errorf("no AI provider available for consolidation")
}
