package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/pkg/llm"
)

const (
	introMaxTokens   = 150
	sectionMaxTokens = 400

	// Shown in place of a section whose generation call failed.
	Placeholder = "_Summary unavailable for this section today._"
)

// Summariser drives the editorial intro and per-source section calls. Calls
// run strictly sequentially through the pacer; a failing section gets the
// placeholder and the rest continue.
type Summariser struct {
	completer llm.Completer
	pacer     *Pacer
}

func New(completer llm.Completer, pacer *Pacer) *Summariser {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	return &Summariser{completer: completer, pacer: pacer}
}

type Result struct {
	Sections       map[string]string
	SectionStatus  map[string]string
	EditorialIntro string
}

func (s *Summariser) Summarise(ctx context.Context, curated []model.Item, prof *profile.Profile, dateLine string) Result {
	res := Result{
		Sections:      make(map[string]string),
		SectionStatus: make(map[string]string),
	}

	res.EditorialIntro = s.editorialIntro(ctx, curated, prof, dateLine)

	bySource := make(map[string][]model.Item)
	for _, it := range curated {
		bySource[it.SourceID] = append(bySource[it.SourceID], it)
	}

	for _, id := range model.SourceOrder() {
		items := bySource[id]
		if len(items) == 0 {
			continue
		}

		if onlyLowTier(items) {
			// Headline+link needs no generative call.
			res.Sections[id] = formatHeadlines(items)
			res.SectionStatus[id] = model.SectionStatic
			continue
		}

		s.pacer.Wait()
		text, err := s.completer.Complete(ctx, llm.EditorSystemPrompt, buildSectionPrompt(id, items), sectionMaxTokens)
		if err != nil {
			slog.Error("section summarisation failed", "source", id, "error", err)
			res.Sections[id] = Placeholder
			res.SectionStatus[id] = model.SectionPlaceholder
			continue
		}

		res.Sections[id] = text
		res.SectionStatus[id] = model.SectionOK
	}

	return res
}

// editorialIntro asks for a short themed opening built from the high tier,
// or from everything when nothing reached high. Failure means no intro,
// never a failed run.
func (s *Summariser) editorialIntro(ctx context.Context, curated []model.Item, prof *profile.Profile, dateLine string) string {
	pool := itemsInTier(curated, model.TierHigh)
	if len(pool) == 0 {
		pool = curated
	}
	if len(pool) == 0 {
		return ""
	}

	s.pacer.Wait()
	text, err := s.completer.Complete(ctx, llm.EditorSystemPrompt, buildIntroPrompt(pool, prof, dateLine), introMaxTokens)
	if err != nil {
		slog.Warn("editorial intro failed", "error", err)
		return ""
	}
	return text
}

func itemsInTier(items []model.Item, tier model.Tier) []model.Item {
	var out []model.Item
	for _, it := range items {
		if it.Tier == tier {
			out = append(out, it)
		}
	}
	return out
}

func onlyLowTier(items []model.Item) bool {
	for _, it := range items {
		if it.Tier != model.TierLow {
			return false
		}
	}
	return true
}

func formatHeadlines(items []model.Item) string {
	var sb strings.Builder
	for _, it := range items {
		if it.Link != "" {
			fmt.Fprintf(&sb, "- [%s](%s)\n", it.Title, it.Link)
		} else {
			fmt.Fprintf(&sb, "- %s\n", it.Title)
		}
	}
	return sb.String()
}
