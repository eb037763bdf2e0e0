package model

import "time"

type Tier string

const (
	TierNone   Tier = ""
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Tier boundaries are fixed; the filter threshold is configurable separately.
const (
	HighTierMin   = 0.8
	MediumTierMin = 0.6
)

// TierForScore buckets a relevance score. Boundaries are inclusive on the
// lower side: 0.8 is high, 0.6 is medium.
func TierForScore(score float64) Tier {
	switch {
	case score >= HighTierMin:
		return TierHigh
	case score >= MediumTierMin:
		return TierMedium
	default:
		return TierLow
	}
}

type Item struct {
	SourceID    string
	Title       string
	Link        string
	Body        string
	PublishedAt time.Time

	// Score is nil until the curator assigns it, and immutable afterwards.
	Score *float64
	Tier  Tier
}

func (i Item) ScoreValue() float64 {
	if i.Score == nil {
		return 0
	}
	return *i.Score
}
