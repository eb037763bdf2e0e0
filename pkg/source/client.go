package source

import (
	"context"
	"time"
)

// Item is one piece of fetched content before curation.
type Item struct {
	Title       string
	Link        string
	Body        string
	PublishedAt time.Time
}

// Source pulls raw items from one upstream provider. A failing source
// returns an error and contributes nothing; the pipeline records the error
// and moves on.
type Source interface {
	Fetch(ctx context.Context) ([]Item, error)
	ID() string
}
