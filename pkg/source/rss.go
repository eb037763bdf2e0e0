package source

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

type RSSSource struct {
	id     string
	url    string
	limit  int
	parser *gofeed.Parser
}

func NewRSSSource(id, url string, limit int) *RSSSource {
	return &RSSSource{
		id:     id,
		url:    url,
		limit:  limit,
		parser: gofeed.NewParser(),
	}
}

func (s *RSSSource) ID() string {
	return s.id
}

func (s *RSSSource) Fetch(ctx context.Context) ([]Item, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", s.id, err)
	}

	entries := feed.Items
	if s.limit > 0 && len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		body := e.Description
		if body == "" {
			body = e.Content
		}

		var published time.Time
		if e.PublishedParsed != nil {
			published = *e.PublishedParsed
		}

		items = append(items, Item{
			Title:       e.Title,
			Link:        e.Link,
			Body:        stripHTML(body),
			PublishedAt: published,
		})
	}

	return items, nil
}
