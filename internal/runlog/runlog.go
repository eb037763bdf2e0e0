package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sumoseah/daily-digest/internal/model"
)

const topItemCount = 3

type ItemRecord struct {
	Source string  `json:"source"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Tier   string  `json:"tier"`
}

// Entry is the per-day run artifact: one JSON file per calendar date,
// overwritten on a same-day rerun, never read back by this process.
type Entry struct {
	Date          string                       `json:"date"`
	Model         string                       `json:"model"`
	Degraded      bool                         `json:"degraded"`
	Fetch         map[string]model.FetchStatus `json:"fetch"`
	CuratedItems  []ItemRecord                 `json:"curated_items"`
	TopItems      []ItemRecord                 `json:"top_3_items"`
	FailedSources []string                     `json:"failed_sources"`
	SectionStatus map[string]string            `json:"section_status"`
}

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) Write(entry Entry) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run log: %w", err)
	}

	path := filepath.Join(w.dir, entry.Date+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write run log: %w", err)
	}

	return path, nil
}

// FromRunResult flattens a run into its log entry. Curated items arrive
// already ranked, so the top-N slice is a prefix.
func FromRunResult(res *model.RunResult, modelName string) Entry {
	records := make([]ItemRecord, len(res.Curated))
	for i, it := range res.Curated {
		records[i] = ItemRecord{
			Source: it.SourceID,
			Title:  it.Title,
			Score:  it.ScoreValue(),
			Tier:   string(it.Tier),
		}
	}

	top := records
	if len(top) > topItemCount {
		top = top[:topItemCount]
	}

	failed := res.FailedSources()
	if failed == nil {
		failed = []string{}
	}

	return Entry{
		Date:          res.Date,
		Model:         modelName,
		Degraded:      res.Degraded,
		Fetch:         res.Fetch,
		CuratedItems:  records,
		TopItems:      top,
		FailedSources: failed,
		SectionStatus: res.SectionStatus,
	}
}
