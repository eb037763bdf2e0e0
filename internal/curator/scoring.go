package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/pkg/llm"
)

const maxBodyChars = 200

// scoreAll sends one batched scoring request covering every item. One call,
// not one per item, to bound cost and latency.
func (c *Curator) scoreAll(ctx context.Context, items []model.Item, prof *profile.Profile) ([]float64, error) {
	if c.completer == nil {
		return nil, fmt.Errorf("no completer configured")
	}

	raw, err := c.completer.Complete(ctx, llm.CuratorSystemPrompt, buildScoringPrompt(items, prof), scoringMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("scoring call: %w", err)
	}

	return parseScores(raw, len(items))
}

func buildScoringPrompt(items []model.Item, prof *profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("Given this user profile:\n")
	sb.WriteString(prof.Summary())
	sb.WriteString("\nScore each item below for relevance (0.0-1.0) to this user's interests.\n")
	sb.WriteString("Return a JSON object with this exact structure:\n")
	sb.WriteString(`{"scores": [{"index": 0, "score": 0.85, "rationale": "one sentence why"}]}`)
	sb.WriteString("\n\nEvery item must appear exactly once, keyed by its index.\n")
	sb.WriteString("Return valid JSON only. No markdown, no explanation outside the JSON.\n")
	sb.WriteString("\nItems to score:\n")

	lastSource := ""
	for i, it := range items {
		if it.SourceID != lastSource {
			fmt.Fprintf(&sb, "\n### Source: %s (%s)\n", it.SourceID, model.SourceLabel(it.SourceID))
			lastSource = it.SourceID
		}
		fmt.Fprintf(&sb, "[%d] %s\n", i, it.Title)
		if it.Body != "" {
			fmt.Fprintf(&sb, "    %s\n", llm.Truncate(it.Body, maxBodyChars))
		}
	}

	return sb.String()
}

// parseScores validates the scoring response strictly: every index present
// exactly once, every score in [0,1]. Anything else is a scoring failure and
// the caller degrades the whole run.
func parseScores(raw string, n int) ([]float64, error) {
	content := llm.CleanJSONResponse(raw)

	var parsed struct {
		Scores []struct {
			Index int     `json:"index"`
			Score float64 `json:"score"`
		} `json:"scores"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse scoring response: %w, content: %s", err, content)
	}

	scores := make([]float64, n)
	seen := make([]bool, n)
	for _, entry := range parsed.Scores {
		if entry.Index < 0 || entry.Index >= n {
			return nil, fmt.Errorf("score index %d out of range [0,%d)", entry.Index, n)
		}
		if entry.Score < 0 || entry.Score > 1 {
			return nil, fmt.Errorf("score %v for item %d outside [0,1]", entry.Score, entry.Index)
		}
		scores[entry.Index] = entry.Score
		seen[entry.Index] = true
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("missing score for item %d", i)
		}
	}

	return scores, nil
}
