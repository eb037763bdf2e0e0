package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const lumaUserAgent = "Mozilla/5.0 (compatible; DailyDigestBot/1.0)"

// LumaSource scrapes the Luma events page. The page is server-rendered via
// Next.js, so events live in the embedded __NEXT_DATA__ JSON blob. A page
// without that blob yields zero items, not an error.
type LumaSource struct {
	id         string
	url        string
	limit      int
	httpClient *http.Client
}

func NewLumaSource(id, url string, limit int) *LumaSource {
	return &LumaSource{
		id:         id,
		url:        url,
		limit:      limit,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *LumaSource) ID() string {
	return s.id
}

func (s *LumaSource) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("luma request: %w", err)
	}
	req.Header.Set("User-Agent", lumaUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("luma fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("luma fetch: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("luma parse: %w", err)
	}

	raw := doc.Find("script#__NEXT_DATA__").Text()
	if raw == "" {
		return nil, nil
	}

	events, err := extractNextDataEvents(raw)
	if err != nil {
		return nil, fmt.Errorf("luma events: %w", err)
	}

	if s.limit > 0 && len(events) > s.limit {
		events = events[:s.limit]
	}

	items := make([]Item, 0, len(events))
	for _, ev := range events {
		name := firstString(ev, "name", "title")
		if name == "" {
			continue
		}

		url := firstString(ev, "url", "event_url")
		if url != "" && !strings.HasPrefix(url, "http") {
			url = "https://lu.ma/" + url
		}

		start := firstString(ev, "start_at", "start")
		body := firstString(ev, "description", "summary")
		if start != "" {
			body = start + " | " + body
		}

		items = append(items, Item{
			Title: name,
			Link:  url,
			Body:  body,
		})
	}

	return items, nil
}

// extractNextDataEvents walks the pageProps node looking for the first
// non-empty list of event objects. The page schema shifts between deploys,
// so the walk checks a few known keys before scanning nested maps.
func extractNextDataEvents(raw string) ([]map[string]any, error) {
	var data struct {
		Props struct {
			PageProps map[string]any `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode __NEXT_DATA__: %w", err)
	}

	for _, key := range []string{"initialData", "events", "data"} {
		node, ok := data.Props.PageProps[key]
		if !ok {
			continue
		}
		if events := eventList(node); len(events) > 0 {
			return events, nil
		}
		if sub, ok := node.(map[string]any); ok {
			for _, v := range sub {
				if events := eventList(v); len(events) > 0 {
					return events, nil
				}
			}
		}
	}

	return nil, nil
}

func eventList(node any) []map[string]any {
	list, ok := node.([]any)
	if !ok {
		return nil
	}

	events := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			events = append(events, m)
		}
	}
	return events
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
