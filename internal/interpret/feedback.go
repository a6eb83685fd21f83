package interpret

import (
	"fmt"
	"strings"

	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

const noFiltersMessage = "I couldn't identify any filters in your message. Try mentioning specific skills, topics, or content formats."

// Describe renders the assistant-side summary of one interpreted turn. Only
// categories that actually changed get a bullet; a turn that changed nothing
// gets the fixed fallback line instead of an empty string.
func Describe(delta *Delta, matched *MatchedTerms) string {
	var bullets []string

	add := func(label string, terms []vocabulary.Term) {
		if len(terms) > 0 {
			bullets = append(bullets, fmt.Sprintf("• %s: %s", label, strings.Join(vocabulary.Labels(terms), ", ")))
		}
	}

	add("Formats", matched.Formats)
	add("Topics", matched.Topics)
	add("Skills", matched.Skills)
	add("Languages", matched.Languages)
	add("Publications", matched.Publications)

	if delta.MinScore != nil {
		bullets = append(bullets, fmt.Sprintf("• Minimum score: %d", *delta.MinScore))
	}
	if delta.MinExperience != nil {
		bullets = append(bullets, fmt.Sprintf("• Minimum experience: %d years", *delta.MinExperience))
	}
	if delta.MinProjects != nil {
		bullets = append(bullets, fmt.Sprintf("• Minimum projects: %d", *delta.MinProjects))
	}
	if delta.ResultCount != nil {
		bullets = append(bullets, fmt.Sprintf("• Results to show: %d", *delta.ResultCount))
	}
	if n := len(delta.ContentExamples); n > 0 {
		noun := "links"
		if n == 1 {
			noun = "link"
		}
		bullets = append(bullets, fmt.Sprintf("• Content examples: %d %s captured", n, noun))
	}

	if len(bullets) == 0 {
		return noFiltersMessage
	}

	return "I've updated your search:\n" + strings.Join(bullets, "\n")
}
