package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"scores":[]}`,
			want:  `{"scores":[]}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"scores\":[]}\n```",
			want:  `{"scores":[]}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"scores\":[]}\n```",
			want:  `{"scores":[]}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"scores\":[]}  ",
			want:  `{"scores":[]}`,
		},
		{
			name:  "extracts object from surrounding prose",
			input: "Here are the scores:\n{\"scores\":[{\"index\":0,\"score\":0.9}]}\nLet me know!",
			want:  `{"scores":[{"index":0,"score":0.9}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("a long headline", 6); got != "a long..." {
		t.Errorf("got %q", got)
	}
}
