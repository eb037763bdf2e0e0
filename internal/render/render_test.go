package render

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/sumoseah/daily-digest/internal/model"
)

var testDate = time.Date(2026, time.August, 31, 7, 0, 0, 0, time.UTC)

func TestMarkdownToHTML(t *testing.T) {
	html := MarkdownToHTML("- **bold** point with [a link](https://example.com)\n- second point")

	if !strings.Contains(html, "<li>") {
		t.Errorf("expected list items, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected bold, got %q", html)
	}
	if !strings.Contains(html, `<a href="https://example.com"`) {
		t.Errorf("expected link, got %q", html)
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Your Daily Digest — Monday, August 31, 2026", Subject(testDate))
}

func TestBuildHTML_SectionsInCatalogOrder(t *testing.T) {
	res := model.NewRunResult("2026-08-31")
	res.EditorialIntro = "Agents dominate the news."
	res.Sections["funcheap"] = "- street fair"
	res.Sections["simon"] = "- new agent post"

	html := BuildHTML(res, testDate)

	if !strings.Contains(html, "Agents dominate the news.") {
		t.Errorf("missing editorial intro")
	}
	simonAt := strings.Index(html, "Simon Willison")
	funcheapAt := strings.Index(html, "Funcheap")
	if simonAt < 0 || funcheapAt < 0 || simonAt > funcheapAt {
		t.Errorf("sections out of order: simon=%d funcheap=%d", simonAt, funcheapAt)
	}
}

func TestBuildHTML_FailedSourcesFooter(t *testing.T) {
	res := model.NewRunResult("2026-08-31")
	res.Sections["simon"] = "- a post"
	res.Fetch["luma"] = model.FetchStatus{State: model.FetchError, Error: "JS-rendered page returned no events"}

	html := BuildHTML(res, testDate)

	if !strings.Contains(html, "Unavailable today: SF Meetups: Luma") {
		t.Errorf("failed source not noted in footer:\n%s", html)
	}
}

func TestBuildHTML_EmptyState(t *testing.T) {
	res := model.NewRunResult("2026-08-31")

	html := BuildHTML(res, testDate)

	if !strings.Contains(html, "Nothing relevant today") {
		t.Errorf("missing empty-state body")
	}
}
