package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sumoseah/daily-digest/internal/curator"
	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/internal/render"
	"github.com/sumoseah/daily-digest/internal/runlog"
	"github.com/sumoseah/daily-digest/internal/summary"
	"github.com/sumoseah/daily-digest/pkg/source"
)

// Sender delivers the rendered digest.
type Sender interface {
	Send(ctx context.Context, subject, html string) error
}

// Deps wires the collaborators into the run pipeline.
type Deps struct {
	Sources    []source.Source
	Curator    *curator.Curator
	Summariser *summary.Summariser
	Sender     Sender
	RunLog     *runlog.Writer
	Profile    *profile.Profile
	ModelName  string
	Now        func() time.Time
}

// Pipeline executes one digest run: fetch, curate, summarise, render, send,
// log. Data flows strictly forward; no state survives between runs.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps}
}

// Run performs a full execution. With dryRun set the email is written to a
// local HTML file instead of being sent. Only a delivery failure returns an
// error; everything else degrades.
func (p *Pipeline) Run(ctx context.Context, dryRun bool) (*model.RunResult, error) {
	now := p.deps.Now()
	res := model.NewRunResult(now.Format("2006-01-02"))

	items := p.fetchAll(ctx, res)

	curated, degraded := p.deps.Curator.Curate(ctx, items, p.deps.Profile)
	res.Curated = curated
	res.Degraded = degraded
	slog.Info("curation complete", "fetched", len(items), "curated", len(curated), "degraded", degraded)

	sum := p.deps.Summariser.Summarise(ctx, curated, p.deps.Profile, render.DateLine(now))
	res.Sections = sum.Sections
	res.SectionStatus = sum.SectionStatus
	res.EditorialIntro = sum.EditorialIntro

	html := render.BuildHTML(res, now)

	var sendErr error
	if dryRun {
		path := fmt.Sprintf("dry-run-%s.html", res.Date)
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			slog.Error("failed to write dry-run output", "error", err)
		} else {
			slog.Info("dry run, email not sent", "html", path)
		}
	} else {
		sendErr = p.deps.Sender.Send(ctx, render.Subject(now), html)
	}

	// The run log is written even when delivery failed.
	if p.deps.RunLog != nil {
		entry := runlog.FromRunResult(res, p.deps.ModelName)
		if path, err := p.deps.RunLog.Write(entry); err != nil {
			slog.Error("failed to write run log", "error", err)
		} else {
			slog.Info("run log written", "path", path)
		}
	}

	if sendErr != nil {
		return res, fmt.Errorf("deliver digest: %w", sendErr)
	}

	return res, nil
}

// fetchAll walks the declared sources in order. A failing source contributes
// zero items and an error entry in the fetch status; the run continues.
func (p *Pipeline) fetchAll(ctx context.Context, res *model.RunResult) []model.Item {
	var items []model.Item

	for _, src := range p.deps.Sources {
		fetched, err := src.Fetch(ctx)
		if err != nil {
			slog.Error("source fetch failed", "source", src.ID(), "error", err)
			res.Fetch[src.ID()] = model.FetchStatus{State: model.FetchError, Error: err.Error()}
			continue
		}

		if len(fetched) == 0 {
			res.Fetch[src.ID()] = model.FetchStatus{State: model.FetchEmpty}
			continue
		}

		res.Fetch[src.ID()] = model.FetchStatus{State: model.FetchOK, Items: len(fetched)}
		for _, it := range fetched {
			items = append(items, model.Item{
				SourceID:    src.ID(),
				Title:       it.Title,
				Link:        it.Link,
				Body:        it.Body,
				PublishedAt: it.PublishedAt,
			})
		}
	}

	return items
}
