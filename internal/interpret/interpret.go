package interpret

import (
	"strings"

	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

// Score thresholds attached to seniority wording.
const (
	scoreExpert      = 8
	scoreExperienced = 6
	scoreJunior      = 4
)

// seniorityLevels is checked in order; the first group with a hit wins and the
// rest are not evaluated.
var seniorityLevels = []struct {
	words []string
	score int
}{
	{words: []string{"expert", "senior"}, score: scoreExpert},
	{words: []string{"experienced", "mid-level"}, score: scoreExperienced},
	{words: []string{"junior", "beginner"}, score: scoreJunior},
}

// Delta is a partial filter update. Nil/empty fields mean "leave untouched";
// interpretation only ever accumulates, it never clears.
type Delta struct {
	Industries  []string
	Specialties []string
	Skills      []string

	MinExperience *int
	MinScore      *int
	MinProjects   *int
	ResultCount   *int

	// ContentExamples is raw extraction output. Normalization happens when
	// the delta is applied, not here.
	ContentExamples []string
}

// Empty reports whether the delta carries no update at all.
func (d *Delta) Empty() bool {
	return len(d.Industries) == 0 && len(d.Specialties) == 0 && len(d.Skills) == 0 &&
		d.MinExperience == nil && d.MinScore == nil && d.MinProjects == nil &&
		d.ResultCount == nil && len(d.ContentExamples) == 0
}

// MatchedTerms lists the vocabulary terms found in one query, per category, in
// vocabulary order.
type MatchedTerms struct {
	Formats      []vocabulary.Term
	Topics       []vocabulary.Term
	Skills       []vocabulary.Term
	Languages    []vocabulary.Term
	Publications []vocabulary.Term
}

func (m *MatchedTerms) Total() int {
	return len(m.Formats) + len(m.Topics) + len(m.Skills) + len(m.Languages) + len(m.Publications)
}

// TermsFromDelta reconstructs matched terms from a delta's selection labels,
// for deltas produced outside Interpret. Labels the set knows keep their
// canonical term; unknown labels become bare terms so feedback still names
// everything the delta applies.
func TermsFromDelta(delta *Delta, set *vocabulary.Set) *MatchedTerms {
	if set == nil {
		set = &vocabulary.Set{}
	}
	return &MatchedTerms{
		Formats: termsForLabels(delta.Specialties, set.Formats, vocabulary.CategoryFormat),
		Topics:  termsForLabels(delta.Industries, set.Topics, vocabulary.CategoryTopic),
		Skills:  termsForLabels(delta.Skills, set.Skills, vocabulary.CategorySkill),
	}
}

func termsForLabels(labels []string, known []vocabulary.Term, category vocabulary.Category) []vocabulary.Term {
	var terms []vocabulary.Term
	for _, label := range labels {
		found := false
		for _, term := range known {
			if strings.EqualFold(term.Label, label) {
				terms = append(terms, term)
				found = true
				break
			}
		}
		if !found {
			terms = append(terms, vocabulary.Term{Label: label, Category: category})
		}
	}
	return terms
}

// Interpret turns one free-text query into a filter delta plus the vocabulary
// terms it mentioned. It is pure: no transport, no state, and it never fails.
// Empty vocabularies simply match nothing.
func Interpret(text string, set *vocabulary.Set) (*Delta, *MatchedTerms) {
	delta := &Delta{}
	matched := &MatchedTerms{}
	if set == nil {
		set = &vocabulary.Set{}
	}

	lowered := strings.ToLower(text)

	matched.Formats = matchTerms(lowered, set.Formats)
	matched.Topics = matchTerms(lowered, set.Topics)
	matched.Skills = matchTerms(lowered, set.Skills)
	matched.Languages = matchTerms(lowered, set.Languages)
	matched.Publications = matchTerms(lowered, set.Publications)

	// Topics narrow industries, formats narrow specialties, skills narrow
	// skills. Languages and publications only shape the remote request.
	delta.Industries = vocabulary.Labels(matched.Topics)
	delta.Specialties = vocabulary.Labels(matched.Formats)
	delta.Skills = vocabulary.Labels(matched.Skills)

	if urls := ExtractURLs(text); len(urls) > 0 {
		delta.ContentExamples = urls
	}

	for _, level := range seniorityLevels {
		if containsAny(lowered, level.words) {
			score := level.score
			delta.MinScore = &score
			break
		}
	}

	applyNumericHints(lowered, delta)

	return delta, matched
}

func matchTerms(loweredText string, terms []vocabulary.Term) []vocabulary.Term {
	var matched []vocabulary.Term
	for _, term := range terms {
		label := strings.ToLower(term.Label)
		if label != "" && strings.Contains(loweredText, label) {
			matched = append(matched, term)
		}
	}
	return matched
}

// applyNumericHints binds an extracted quantity to the threshold its
// surrounding wording points at.
func applyNumericHints(lowered string, delta *Delta) {
	n, ok := ExtractNumber(lowered)
	if !ok {
		return
	}

	switch {
	case strings.Contains(lowered, "year") || strings.Contains(lowered, "experience"):
		if n >= 0 {
			delta.MinExperience = &n
		}
	case strings.Contains(lowered, "project"):
		if n >= 0 {
			delta.MinProjects = &n
		}
	case strings.Contains(lowered, "result") || strings.Contains(lowered, "show me") || strings.Contains(lowered, "top "):
		if n >= 1 {
			delta.ResultCount = &n
		}
	}
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
