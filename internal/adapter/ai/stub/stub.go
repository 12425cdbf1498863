// Package stub provides a deterministic AI client for development and tests.
package stub

import (
	"context"
	"encoding/json"
	"hash/fnv"
)

// Client implements domain.AIClient without any network calls. Output is a
// valid analysis JSON derived deterministically from the prompt, so repeated
// runs over identical input produce identical reports.
type Client struct{}

// New constructs a stub client.
func New() *Client { return &Client{} }

// ChatJSON returns a deterministic, schema-valid analysis payload.
func (c *Client) ChatJSON(_ context.Context, _, userPrompt string, _ int) (string, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userPrompt))
	seed := h.Sum32()

	overall := int(seed%10) + 1
	match := int(seed % 101)
	fit := "medium"
	switch {
	case overall >= 8:
		fit = "high"
	case overall <= 3:
		fit = "low"
	}
	out := map[string]any{
		"overall_score": overall,
		"match_score":   match,
		"fit_level":     fit,
		"strengths":     []string{"Stubbed strength"},
		"weaknesses":    []string{"Stubbed weakness"},
		"recommendations": []string{
			"Review with a human recruiter",
		},
		"notes": "deterministic stub output",
	}
	b, _ := json.Marshal(out)
	return string(b), nil
}
