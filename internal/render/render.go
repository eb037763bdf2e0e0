package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/sumoseah/daily-digest/internal/model"
)

const (
	sectionStyle = "margin-bottom: 32px;"
	headerStyle  = "font-size: 13px; font-weight: 700; letter-spacing: 0.08em; text-transform: uppercase; color: #6b7280; border-bottom: 1px solid #e5e7eb; padding-bottom: 6px; margin-bottom: 12px;"
	bodyStyle    = "font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; font-size: 15px; line-height: 1.6; color: #1f2937; max-width: 640px; margin: 0 auto; padding: 24px 16px;"
	introStyle   = "background: #f9fafb; border-left: 3px solid #6366f1; padding: 12px 16px; margin-bottom: 32px; border-radius: 0 6px 6px 0; font-style: italic; color: #374151;"
	footerStyle  = "color:#9ca3af; font-size:12px; margin-top:40px; border-top:1px solid #e5e7eb; padding-top:16px;"
)

var markdown = goldmark.New()

// MarkdownToHTML converts an LLM section summary (bullets, bold, links) to
// an HTML fragment.
func MarkdownToHTML(src string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "<p>" + src + "</p>"
	}
	return buf.String()
}

func Subject(now time.Time) string {
	return "Your Daily Digest — " + DateLine(now)
}

func DateLine(now time.Time) string {
	return now.Format("Monday, January 2, 2006")
}

// BuildHTML assembles the full digest email. Failed sources are noted in the
// footer so gaps are observable, never silently hidden.
func BuildHTML(res *model.RunResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	fmt.Fprintf(&sb, "<div style=\"%s\">\n", bodyStyle)
	sb.WriteString("<h1 style=\"font-size:22px; font-weight:700; margin-bottom:4px;\">Good morning ☀️</h1>\n")
	fmt.Fprintf(&sb, "<p style=\"color:#6b7280; margin-top:0; margin-bottom:24px;\">Your daily digest for %s</p>\n", DateLine(now))

	if res.EditorialIntro != "" {
		fmt.Fprintf(&sb, "<div style=\"%s\">%s</div>\n", introStyle, res.EditorialIntro)
	}

	wrote := false
	for _, meta := range model.SourceCatalog {
		body := strings.TrimSpace(res.Sections[meta.ID])
		if body == "" {
			continue
		}
		wrote = true
		fmt.Fprintf(&sb, "<div style=\"%s\">\n<div style=\"%s\">%s %s</div>\n%s</div>\n",
			sectionStyle, headerStyle, meta.Icon, meta.Label, MarkdownToHTML(body))
	}

	if !wrote {
		sb.WriteString("<p>Nothing relevant today. Enjoy the quiet morning.</p>\n")
	}

	if failed := res.FailedSources(); len(failed) > 0 {
		labels := make([]string, len(failed))
		for i, id := range failed {
			labels[i] = model.SourceLabel(id)
		}
		fmt.Fprintf(&sb, "<p style=\"color:#9ca3af; font-size:12px; margin-top:16px;\">⚠️ Unavailable today: %s</p>\n",
			strings.Join(labels, ", "))
	}

	fmt.Fprintf(&sb, "<p style=\"%s\">Generated automatically · <a href=\"https://github.com/sumoseah/daily-digest\" style=\"color:#9ca3af;\">View source</a></p>\n", footerStyle)
	sb.WriteString("</div>\n</body>\n</html>\n")

	return sb.String()
}
