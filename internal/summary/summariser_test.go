package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
)

type scriptedCompleter struct {
	fn      func(system, prompt string) (string, error)
	prompts []string
}

func (s *scriptedCompleter) Complete(_ context.Context, system, prompt string, _ int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.fn == nil {
		return "generated text", nil
	}
	return s.fn(system, prompt)
}

func (s *scriptedCompleter) ModelName() string { return "fake" }

func scored(sourceID, title string, score float64) model.Item {
	v := score
	return model.Item{
		SourceID: sourceID,
		Title:    title,
		Link:     "https://example.com/" + title,
		Score:    &v,
		Tier:     model.TierForScore(score),
	}
}

func testProfile() *profile.Profile {
	p := &profile.Profile{}
	p.User.Name = "Sam"
	p.User.Role = "product engineer"
	p.Interests.HighPriority = []string{"AI agents", "LLM tooling", "startups", "devtools"}
	return p
}

func TestSummarise_Empty(t *testing.T) {
	completer := &scriptedCompleter{}
	s := New(completer, NewPacer(0))

	res := s.Summarise(context.Background(), nil, testProfile(), "Monday, August 31, 2026")

	assert.Equal(t, "", res.EditorialIntro)
	assert.Equal(t, 0, len(res.Sections))
	assert.Equal(t, 0, len(completer.prompts))
}

func TestSummarise_IntroUsesHighTierOnly(t *testing.T) {
	items := []model.Item{
		scored("simon", "big-agent-news", 0.9),
		scored("funcheap", "jazz-concert", 0.62),
	}
	completer := &scriptedCompleter{}
	s := New(completer, NewPacer(0))

	s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	intro := completer.prompts[0]
	if !strings.Contains(intro, "big-agent-news") {
		t.Errorf("intro prompt missing high-tier item: %q", intro)
	}
	if strings.Contains(intro, "jazz-concert") {
		t.Errorf("intro prompt should not include medium-tier item: %q", intro)
	}
}

func TestSummarise_IntroFallsBackToAllItems(t *testing.T) {
	items := []model.Item{scored("funcheap", "jazz-concert", 0.62)}
	completer := &scriptedCompleter{}
	s := New(completer, NewPacer(0))

	res := s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	assert.Equal(t, "generated text", res.EditorialIntro)
	if !strings.Contains(completer.prompts[0], "jazz-concert") {
		t.Errorf("fallback intro prompt missing item")
	}
}

func TestSummarise_SectionFailureGetsPlaceholder(t *testing.T) {
	items := []model.Item{
		scored("simon", "agents-everywhere", 0.9),
		scored("techcrunch", "funding-round", 0.8),
	}
	completer := &scriptedCompleter{
		fn: func(_, prompt string) (string, error) {
			if strings.Contains(prompt, "TechCrunch") {
				return "", errors.New("rate limited")
			}
			return "real summary", nil
		},
	}
	s := New(completer, NewPacer(0))

	res := s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	assert.Equal(t, Placeholder, res.Sections["techcrunch"])
	assert.Equal(t, model.SectionPlaceholder, res.SectionStatus["techcrunch"])
	assert.Equal(t, "real summary", res.Sections["simon"])
	assert.Equal(t, model.SectionOK, res.SectionStatus["simon"])
}

func TestSummarise_LowOnlySectionSkipsLLM(t *testing.T) {
	items := []model.Item{
		scored("simon", "minor-note", 0.3),
		scored("simon", "another-note", 0.2),
	}
	completer := &scriptedCompleter{}
	s := New(completer, NewPacer(0))

	res := s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	// Only the intro call happens; the section is pure formatting.
	assert.Equal(t, 1, len(completer.prompts))
	assert.Equal(t, model.SectionStatic, res.SectionStatus["simon"])
	if !strings.Contains(res.Sections["simon"], "[minor-note]") {
		t.Errorf("static section missing headline link: %q", res.Sections["simon"])
	}
}

func TestSummarise_IntroFailureIsNonFatal(t *testing.T) {
	items := []model.Item{scored("simon", "agents-everywhere", 0.9)}
	first := true
	completer := &scriptedCompleter{
		fn: func(_, _ string) (string, error) {
			if first {
				first = false
				return "", errors.New("timeout")
			}
			return "section text", nil
		},
	}
	s := New(completer, NewPacer(0))

	res := s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	assert.Equal(t, "", res.EditorialIntro)
	assert.Equal(t, "section text", res.Sections["simon"])
}

func TestSummarise_SectionsInDeclarationOrder(t *testing.T) {
	items := []model.Item{
		scored("funcheap", "street-fair", 0.7),
		scored("simon", "agents-everywhere", 0.9),
	}
	completer := &scriptedCompleter{}
	s := New(completer, NewPacer(0))

	s.Summarise(context.Background(), items, testProfile(), "Monday, August 31, 2026")

	// intro, then simon before funcheap regardless of input order
	assert.Equal(t, 3, len(completer.prompts))
	if !strings.Contains(completer.prompts[1], "Simon Willison") {
		t.Errorf("expected simon section first, got %q", completer.prompts[1])
	}
	if !strings.Contains(completer.prompts[2], "Funcheap") {
		t.Errorf("expected funcheap section second, got %q", completer.prompts[2])
	}
}

func TestPacer_EnforcesMinimumInterval(t *testing.T) {
	var slept []time.Duration
	clock := time.Unix(0, 0)

	p := NewPacer(3 * time.Second)
	p.now = func() time.Time { return clock }
	p.sleep = func(d time.Duration) {
		slept = append(slept, d)
		clock = clock.Add(d)
	}

	p.Wait() // first call never sleeps
	clock = clock.Add(1 * time.Second)
	p.Wait() // 1s elapsed, owes 2s
	clock = clock.Add(5 * time.Second)
	p.Wait() // interval already passed

	assert.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestPacer_ZeroIntervalDisabled(t *testing.T) {
	p := NewPacer(0)
	p.sleep = func(time.Duration) { t.Fatal("pacer slept with zero interval") }

	p.Wait()
	p.Wait()
}
