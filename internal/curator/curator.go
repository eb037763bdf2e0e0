package curator

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/pkg/llm"
)

const scoringMaxTokens = 2500

// Curator scores, filters, caps, and tiers fetched items against the user
// profile. Scoring is delegated to the LLM; all policy lives here.
type Curator struct {
	completer llm.Completer
}

func New(completer llm.Completer) *Curator {
	return &Curator{completer: completer}
}

// Curate never fails: any scoring error degrades the run to include-all
// with neutral scores and reports degraded=true.
func (c *Curator) Curate(ctx context.Context, items []model.Item, prof *profile.Profile) ([]model.Item, bool) {
	if len(items) == 0 {
		return []model.Item{}, false
	}

	threshold := prof.Threshold()

	scores, err := c.scoreAll(ctx, items, prof)
	if err != nil {
		slog.Warn("scoring unavailable, falling back to include-all", "error", err)
		return neutralCopy(items, threshold), true
	}

	scored := make([]model.Item, len(items))
	for i, it := range items {
		s := scores[i]
		it.Score = &s
		it.Tier = model.TierForScore(s)
		scored[i] = it
	}

	kept := filterItems(scored, threshold, prof.AlwaysInclude())
	kept = capPerSource(kept, prof.MaxItemsPerSource())
	orderByTier(kept)

	return kept, false
}

// neutralCopy implements degraded mode: every item gets the threshold value
// as its score and nothing is filtered or capped, equivalent to the
// pre-curation behavior of including everything in fetch order.
func neutralCopy(items []model.Item, threshold float64) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		s := threshold
		it.Score = &s
		it.Tier = model.TierForScore(s)
		out[i] = it
	}
	return out
}

func filterItems(items []model.Item, threshold float64, alwaysInclude map[string]bool) []model.Item {
	kept := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ScoreValue() >= threshold || alwaysInclude[it.SourceID] {
			kept = append(kept, it)
		}
	}
	return kept
}

// capPerSource keeps at most max items per source, preferring higher scores.
// Ties keep fetch order so repeated runs are deterministic.
func capPerSource(items []model.Item, max int) []model.Item {
	if max <= 0 {
		return items
	}

	bySource := make(map[string][]int)
	for i, it := range items {
		bySource[it.SourceID] = append(bySource[it.SourceID], i)
	}

	drop := make(map[int]bool)
	for _, idxs := range bySource {
		if len(idxs) <= max {
			continue
		}
		ranked := make([]int, len(idxs))
		copy(ranked, idxs)
		sort.SliceStable(ranked, func(a, b int) bool {
			return items[ranked[a]].ScoreValue() > items[ranked[b]].ScoreValue()
		})
		for _, idx := range ranked[max:] {
			drop[idx] = true
		}
	}

	kept := make([]model.Item, 0, len(items))
	for i, it := range items {
		if !drop[i] {
			kept = append(kept, it)
		}
	}
	return kept
}

// orderByTier sorts high before medium before low, descending score within a
// tier, ties by fetch order.
func orderByTier(items []model.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		ra, rb := tierRank(items[a].Tier), tierRank(items[b].Tier)
		if ra != rb {
			return ra < rb
		}
		return items[a].ScoreValue() > items[b].ScoreValue()
	})
}

func tierRank(t model.Tier) int {
	switch t {
	case model.TierHigh:
		return 0
	case model.TierMedium:
		return 1
	default:
		return 2
	}
}
