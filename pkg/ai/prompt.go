package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildConsolidationPrompt renders the shared prompt used by every provider.
// Keeping one prompt means switching providers doesn't change output shape.
func buildConsolidationPrompt(briefs []MeetingBrief) (string, error) {
	briefsJSON, err := json.Marshal(briefs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal meeting briefs: %w", err)
	}

	prompt := fmt.Sprintf(`You are a sales intelligence assistant. Below are insights extracted from %d separate meetings with the same prospect, ordered by meeting time. Merge them into ONE deal-level view.

RULES:
- pain_points: deduplicate across meetings, keep the most specific phrasing
- goals: deduplicate, keep concrete outcomes over vague ones
- risk_assessment: weigh later meetings more heavily than earlier ones
- summary: 2-4 sentences on how the deal is trending and what to do next
- Respond with ONLY a JSON object, no markdown, matching this shape:
{"pain_points": ["..."], "goals": ["..."], "risk_assessment": "...", "summary": "..."}

MEETINGS:
%s

JSON:`, len(briefs), string(briefsJSON))

	return prompt, nil
}

// parseConsolidation extracts the JSON object from a model response.
// Models sometimes wrap JSON in markdown fences despite instructions.
func parseConsolidation(text string) (*InsightConsolidation, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	var consolidation InsightConsolidation
	if err := json.Unmarshal([]byte(text), &consolidation); err != nil {
		return nil, fmt.Errorf("failed to parse consolidation JSON: %w", err)
	}
	return &consolidation, nil
}
