package summary

import (
	"fmt"
	"strings"

	"github.com/sumoseah/daily-digest/internal/model"
	"github.com/sumoseah/daily-digest/internal/profile"
	"github.com/sumoseah/daily-digest/pkg/llm"
)

const maxIntroItems = 6

func buildIntroPrompt(items []model.Item, prof *profile.Profile, dateLine string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Today is %s. Here are today's most relevant items for %s, a %s interested in %s:\n\n",
		dateLine, prof.User.Name, prof.User.Role, strings.Join(topInterests(prof), ", "))

	for i, it := range items {
		if i >= maxIntroItems {
			break
		}
		fmt.Fprintf(&sb, "- [%s] %s (score: %.2f)\n", model.SourceLabel(it.SourceID), it.Title, it.ScoreValue())
	}

	sb.WriteString("\nWrite a 2-3 sentence editorial intro for the morning digest. ")
	sb.WriteString("Highlight the most important theme or story of the day. ")
	sb.WriteString("Be direct and specific. No filler phrases like 'Good morning' or 'Here's your digest'.")
	return sb.String()
}

func topInterests(prof *profile.Profile) []string {
	interests := prof.Interests.HighPriority
	if len(interests) > 3 {
		interests = interests[:3]
	}
	return interests
}

// buildSectionPrompt concatenates one source's items with tier-appropriate
// instructions: high gets context, medium one sentence, low headline+link.
func buildSectionPrompt(sourceID string, items []model.Item) string {
	var high, medium, low []string
	for _, it := range items {
		switch it.Tier {
		case model.TierHigh:
			high = append(high, it.Title)
		case model.TierMedium:
			medium = append(medium, it.Title)
		default:
			low = append(low, it.Title)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarise the following content from %s.\nFormat by relevance tier:\n", model.SourceLabel(sourceID))
	if len(high) > 0 {
		fmt.Fprintf(&sb, "High-relevance items (write 2-3 sentences each with context on why it matters): %s\n", strings.Join(high, "; "))
	}
	if len(medium) > 0 {
		fmt.Fprintf(&sb, "Medium-relevance items (one sentence each): %s\n", strings.Join(medium, "; "))
	}
	if len(low) > 0 {
		fmt.Fprintf(&sb, "Low-relevance items (headline + link only, no summary): %s\n", strings.Join(low, "; "))
	}
	sb.WriteString("\nUse bullet points. Include URLs where available.\n\nContent:\n")

	for _, it := range items {
		fmt.Fprintf(&sb, "- %s %s\n", it.Title, it.Link)
		if it.Body != "" {
			fmt.Fprintf(&sb, "  %s\n", llm.Truncate(it.Body, 500))
		}
	}

	return sb.String()
}
