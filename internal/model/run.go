package model

const (
	FetchOK    = "ok"
	FetchEmpty = "empty"
	FetchError = "error"
)

const (
	SectionOK          = "ok"
	SectionStatic      = "static"
	SectionPlaceholder = "placeholder"
)

type FetchStatus struct {
	State string `json:"status"`
	Items int    `json:"items"`
	Error string `json:"error,omitempty"`
}

// RunResult accumulates the output of one execution. Each pipeline stage
// fills in its own part; nothing is read back from previous runs.
type RunResult struct {
	Date           string
	Degraded       bool
	Fetch          map[string]FetchStatus
	Curated        []Item
	Sections       map[string]string
	SectionStatus  map[string]string
	EditorialIntro string
}

func NewRunResult(date string) *RunResult {
	return &RunResult{
		Date:          date,
		Fetch:         make(map[string]FetchStatus),
		Sections:      make(map[string]string),
		SectionStatus: make(map[string]string),
	}
}

func (r *RunResult) FailedSources() []string {
	var failed []string
	for _, id := range SourceOrder() {
		if st, ok := r.Fetch[id]; ok && st.State == FetchError {
			failed = append(failed, id)
		}
	}
	return failed
}
