package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sumoseah/daily-digest/internal/config"
	"github.com/sumoseah/daily-digest/internal/curator"
	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/pipeline"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/internal/runlog"
	"github.com/sumoseah/daily-digest/internal/summary"
	"github.com/sumoseah/daily-digest/pkg/llm"
	"github.com/sumoseah/daily-digest/pkg/mail"
	"github.com/sumoseah/daily-digest/pkg/source"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	dryRun := flag.Bool("dry-run", false, "run the full pipeline but write the email to a local HTML file instead of sending")
	testCuration := flag.Bool("test-curation", false, "score a small synthetic item set and print the results, no live fetch")
	flag.Parse()

	cfg := config.Load()

	prof, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("error loading profile: %v", err)
	}

	completer, err := newCompleter(cfg)
	if err != nil {
		log.Fatalf("error configuring LLM client: %v", err)
	}

	cur := curator.New(completer)

	if *testCuration {
		runCurationTest(context.Background(), cur, prof)
		return
	}

	p := pipeline.New(pipeline.Deps{
		Sources:    buildSources(cfg),
		Curator:    cur,
		Summariser: summary.New(completer, summary.NewPacer(cfg.LLMCallInterval)),
		Sender:     mail.NewResendSender(cfg.ResendAPIKey, cfg.DigestFrom, cfg.DigestTo),
		RunLog:     runlog.NewWriter(cfg.LogDir),
		Profile:    prof,
		ModelName:  completer.ModelName(),
	})

	res, err := p.Run(context.Background(), *dryRun)
	if err != nil {
		log.Fatalf("error delivering digest: %v", err)
	}

	slog.Info("digest run complete", "date", res.Date, "curated", len(res.Curated), "degraded", res.Degraded)
}

func newCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

// buildSources declares the fixed source set. Newsletter sources need IMAP
// credentials and are skipped without them.
func buildSources(cfg *config.Config) []source.Source {
	sources := []source.Source{
		source.NewRSSSource(model.SourceSimon, "https://simonwillison.net/atom/everything/", 8),
	}

	if cfg.IMAPUser != "" && cfg.IMAPPassword != "" {
		sources = append(sources,
			source.NewNewsletterSource(model.SourceTLDR, cfg.IMAPAddr, cfg.IMAPUser, cfg.IMAPPassword,
				"dan@tldrnewsletter.com", "TLDR"))
	}

	sources = append(sources,
		source.NewRSSSource(model.SourceTechCrunch, "https://techcrunch.com/tag/venture/feed/", cfg.RSSItemLimit),
		source.NewRSSSource(model.SourceProductHunt, "https://www.producthunt.com/feed", 20),
	)

	if cfg.IMAPUser != "" && cfg.IMAPPassword != "" {
		sources = append(sources,
			source.NewNewsletterSource(model.SourceLenny, cfg.IMAPAddr, cfg.IMAPUser, cfg.IMAPPassword,
				"lenny@lennysnewsletter.com", "Lenny"))
	}

	sources = append(sources,
		source.NewLumaSource(model.SourceLuma, "https://luma.com/sf", cfg.RSSItemLimit),
		source.NewRSSSource(model.SourceFuncheap, "https://feeds.feedburner.com/funcheapsf_recent_added_events/", 20),
	)

	return sources
}

// runCurationTest exercises scoring against synthetic items: half clearly
// relevant, half clearly not. One LLM call, scores printed, nothing sent.
func runCurationTest(ctx context.Context, cur *curator.Curator, prof *profile.Profile) {
	items := []model.Item{
		{SourceID: model.SourceSimon, Title: "Multi-agent orchestration patterns for coding assistants", Link: "https://simonwillison.net/2026/agent-arch/"},
		{SourceID: model.SourceSimon, Title: "Notes on building LLM-powered developer tools", Link: "https://simonwillison.net/2026/llm-tools/"},
		{SourceID: model.SourceTechCrunch, Title: "AI agent startup raises $200M to automate enterprise workflows", Link: "https://techcrunch.com/ai-agent-series-c/"},
		{SourceID: model.SourceTechCrunch, Title: "Celebrity chef opens new restaurant in Miami", Link: "https://techcrunch.com/miami-restaurant/"},
		{SourceID: model.SourceFuncheap, Title: "Free jazz concert in Dolores Park this Sunday", Link: "https://sf.funcheap.com/jazz/"},
		{SourceID: model.SourceFuncheap, Title: "Celebrity gossip roundup — who wore it best?", Link: "https://sf.funcheap.com/celeb/"},
	}

	curated, degraded := cur.Curate(ctx, items, prof)
	if degraded {
		fmt.Println("[FAIL] curation fell back to include-all mode; the scoring call failed, try again in a few minutes")
		os.Exit(1)
	}

	fmt.Println("[PASS] curation scoring succeeded")
	for _, it := range curated {
		fmt.Printf("  [%.2f %-6s] %s — %s\n", it.ScoreValue(), it.Tier, it.SourceID, it.Title)
	}
	fmt.Printf("%d of %d synthetic items passed the filter\n", len(curated), len(items))
}
