package vocabulary

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/contently"
)

// Category names a vocabulary kind.
type Category string

const (
	CategoryFormat      Category = "format"
	CategoryTopic       Category = "topic"
	CategorySkill       Category = "skill"
	CategoryLanguage    Category = "language"
	CategoryPublication Category = "publication"
)

// Valid reports whether the category is one of the known kinds.
func (c Category) Valid() bool {
	switch c {
	case CategoryFormat, CategoryTopic, CategorySkill, CategoryLanguage, CategoryPublication:
		return true
	default:
		return false
	}
}

// Term is one canonical vocabulary entry. Value is unique within a category.
type Term struct {
	Value    string
	Label    string
	Category Category
}

// Set holds the per-category term lists in provider order.
type Set struct {
	Formats      []Term
	Topics       []Term
	Skills       []Term
	Languages    []Term
	Publications []Term
}

// ByCategory returns the terms of one category, nil for unknown categories.
func (s *Set) ByCategory(c Category) []Term {
	switch c {
	case CategoryFormat:
		return s.Formats
	case CategoryTopic:
		return s.Topics
	case CategorySkill:
		return s.Skills
	case CategoryLanguage:
		return s.Languages
	case CategoryPublication:
		return s.Publications
	default:
		return nil
	}
}

func (s *Set) Len() int {
	return len(s.Formats) + len(s.Topics) + len(s.Skills) + len(s.Languages) + len(s.Publications)
}

// Provider supplies the raw dropdown payload.
type Provider interface {
	GetDropdownOptions() (*contently.DropdownOptions, error)
}

// Registry caches the vocabulary set for the session. Load replaces the whole
// set; a failed load keeps whatever was there before, possibly nothing.
type Registry struct {
	provider Provider
	logger   *zap.Logger
	set      *Set
}

func NewRegistry(provider Provider, logger *zap.Logger) *Registry {
	return &Registry{
		provider: provider,
		logger:   logger,
		set:      &Set{},
	}
}

// Set returns the current vocabulary set. Never nil; empty categories simply
// produce no matches downstream.
func (r *Registry) Set() *Set {
	return r.set
}

// Load fetches the vocabularies once and replaces the cached set wholesale.
// Transport failures are logged and swallowed: an empty category means "no
// match possible", not an error.
func (r *Registry) Load() {
	options, err := r.provider.GetDropdownOptions()
	if err != nil {
		r.logger.Warn("loading vocabularies failed, keeping previous set",
			zap.Error(err),
			zap.Int("terms", r.set.Len()),
		)
		return
	}

	r.set = fromOptions(options)

	r.logger.Info("vocabularies loaded",
		zap.Int("formats", len(r.set.Formats)),
		zap.Int("topics", len(r.set.Topics)),
		zap.Int("skills", len(r.set.Skills)),
		zap.Int("languages", len(r.set.Languages)),
		zap.Int("publications", len(r.set.Publications)),
	)
}

func fromOptions(options *contently.DropdownOptions) *Set {
	set := &Set{
		Formats:      terms(options.StoryFormats, CategoryFormat),
		Topics:       terms(options.Topics, CategoryTopic),
		Languages:    terms(options.Languages, CategoryLanguage),
		Publications: terms(options.BrandProfiles, CategoryPublication),
	}

	// Skills arrive as {id,name} and are remapped here so downstream
	// matching never sees the upstream shape.
	set.Skills = make([]Term, 0, len(options.Skills))
	for _, skill := range options.Skills {
		label := strings.TrimSpace(skill.Name)
		if label == "" {
			continue
		}
		set.Skills = append(set.Skills, Term{
			Value:    strconv.Itoa(skill.ID),
			Label:    label,
			Category: CategorySkill,
		})
	}

	return set
}

func terms(options []contently.Option, category Category) []Term {
	result := make([]Term, 0, len(options))
	for _, option := range options {
		label := strings.TrimSpace(option.Label)
		if label == "" {
			continue
		}
		value := strings.TrimSpace(option.Value)
		if value == "" {
			value = strings.ToLower(strings.ReplaceAll(label, " ", "_"))
		}
		result = append(result, Term{Value: value, Label: label, Category: category})
	}
	return result
}

// Labels returns the labels of the provided terms, preserving order.
func Labels(list []Term) []string {
	labels := make([]string, 0, len(list))
	for _, term := range list {
		labels = append(labels, term.Label)
	}
	return labels
}
