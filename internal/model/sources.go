package model

const (
	SourceSimon       = "simon"
	SourceTLDR        = "tldr"
	SourceTechCrunch  = "techcrunch"
	SourceProductHunt = "producthunt"
	SourceLenny       = "lenny"
	SourceLuma        = "luma"
	SourceFuncheap    = "funcheap"
)

type SourceMeta struct {
	ID    string
	Label string
	Icon  string
}

// SourceCatalog fixes the enumerated source set and the section order of the
// final digest.
var SourceCatalog = []SourceMeta{
	{ID: SourceSimon, Label: "AI News: Simon Willison", Icon: "🔬"},
	{ID: SourceTLDR, Label: "AI News: TLDR", Icon: "📰"},
	{ID: SourceTechCrunch, Label: "Tech & Funding: TechCrunch", Icon: "💰"},
	{ID: SourceProductHunt, Label: "Tech & Product: Product Hunt", Icon: "🚀"},
	{ID: SourceLenny, Label: "Product: Lenny's Newsletter", Icon: "💡"},
	{ID: SourceLuma, Label: "SF Meetups: Luma", Icon: "🤝"},
	{ID: SourceFuncheap, Label: "Fun in SF: Funcheap", Icon: "🎉"},
}

func SourceOrder() []string {
	order := make([]string, len(SourceCatalog))
	for i, m := range SourceCatalog {
		order[i] = m.ID
	}
	return order
}

func SourceLabel(id string) string {
	for _, m := range SourceCatalog {
		if m.ID == id {
			return m.Label
		}
	}
	return id
}
