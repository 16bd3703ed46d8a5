package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema is the contract the AI response must satisfy before any
// entry is accepted. Scores are only required to be numeric here; range
// enforcement happens via clamping, so a response claiming 140 is repaired
// rather than rejected wholesale.
const responseSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["externalId", "score", "reasoning"],
    "properties": {
      "externalId": {"type": "string", "minLength": 1},
      "score": {"type": "number"},
      "reasoning": {"type": "string", "minLength": 1}
    }
  }
}`

var schema = gojsonschema.NewStringLoader(responseSchema)

// batchEntry is one validated score from an AI batch response.
type batchEntry struct {
	ExternalID string
	Score      int
	Reasoning  string
}

type rawEntry struct {
	ExternalID string  `json:"externalId"`
	Score      float64 `json:"score"`
	Reasoning  string  `json:"reasoning"`
}

// parseBatchResponse validates and decodes the AI's text into batch entries.
// Any structural problem fails the whole batch; the caller falls back to
// default scores rather than guessing which entries were usable.
func parseBatchResponse(raw string) ([]batchEntry, error) {
	cleaned := extractJSON(raw)

	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("ai response failed schema validation: %s", strings.Join(details, "; "))
	}

	var decoded []rawEntry
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("decode ai response: %w", err)
	}

	entries := make([]batchEntry, 0, len(decoded))
	for _, e := range decoded {
		entries = append(entries, batchEntry{
			ExternalID: strings.TrimSpace(e.ExternalID),
			Score:      clampScore(e.Score),
			Reasoning:  strings.TrimSpace(e.Reasoning),
		})
	}

	return entries, nil
}

// extractJSON strips incidental markdown code fences the model sometimes
// wraps its answer in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// clampScore forces any numeric score into the closed [0, 100] interval.
// A misbehaving upstream cannot push an out-of-range value downstream.
func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}
