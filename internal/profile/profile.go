package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultThreshold = 0.6
	defaultMaxItems  = 5
)

// Profile is the user preference document driving curation. It is loaded
// once at run start and treated as an immutable value afterwards.
type Profile struct {
	User struct {
		Name string `yaml:"name"`
		Role string `yaml:"role"`
	} `yaml:"user"`
	Interests struct {
		HighPriority   []string `yaml:"high_priority"`
		MediumPriority []string `yaml:"medium_priority"`
		LowPriority    []string `yaml:"low_priority"`
	} `yaml:"interests"`
	ContentRules struct {
		MinRelevanceThreshold float64  `yaml:"min_relevance_threshold"`
		AlwaysIncludeSources  []string `yaml:"always_include_sources"`
		MaxItemsPerSection    int      `yaml:"max_items_per_section"`
	} `yaml:"content_rules"`
}

func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	return &p, nil
}

func (p *Profile) Threshold() float64 {
	if p.ContentRules.MinRelevanceThreshold <= 0 {
		return defaultThreshold
	}
	return p.ContentRules.MinRelevanceThreshold
}

func (p *Profile) MaxItemsPerSource() int {
	if p.ContentRules.MaxItemsPerSection <= 0 {
		return defaultMaxItems
	}
	return p.ContentRules.MaxItemsPerSection
}

func (p *Profile) AlwaysInclude() map[string]bool {
	set := make(map[string]bool, len(p.ContentRules.AlwaysIncludeSources))
	for _, id := range p.ContentRules.AlwaysIncludeSources {
		set[id] = true
	}
	return set
}

// Summary renders the profile as prompt context for the scoring call.
func (p *Profile) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User: %s, %s\n", p.User.Name, p.User.Role)
	fmt.Fprintf(&sb, "High priority interests: %s\n", strings.Join(p.Interests.HighPriority, ", "))
	fmt.Fprintf(&sb, "Medium priority interests: %s\n", strings.Join(p.Interests.MediumPriority, ", "))
	fmt.Fprintf(&sb, "Low priority interests: %s\n", strings.Join(p.Interests.LowPriority, ", "))
	fmt.Fprintf(&sb, "Relevance threshold: %.2f (exclude anything below this)\n", p.Threshold())
	fmt.Fprintf(&sb, "Max items per source: %d\n", p.MaxItemsPerSource())
	return sb.String()
}
