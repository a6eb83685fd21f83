package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/logger"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Interpreter asks Gemini for a structured filter delta. It is consulted only
// when the deterministic pass found nothing, and its output is restricted to
// labels the vocabulary actually knows.
type Interpreter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewInterpreter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Interpreter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Interpreter{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (i *Interpreter) Interpret(ctx context.Context, query string, set *vocabulary.Set) (*interpret.Delta, error) {
	if strings.TrimSpace(query) == "" {
		return &interpret.Delta{}, nil
	}
	if set == nil {
		set = &vocabulary.Set{}
	}

	prompt := buildPrompt(query, set)

	i.logger.Debug("gemini interpret request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("gemini interpret response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, i.maxLogLen)),
	)

	return parseResponse(raw, set)
}

func buildPrompt(query string, set *vocabulary.Set) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Request:\n{{QUERY}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{INDUSTRIES}}", joinLabels(set.Topics))
	prompt = strings.ReplaceAll(prompt, "{{SPECIALTIES}}", joinLabels(set.Formats))
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", joinLabels(set.Skills))
	prompt = strings.ReplaceAll(prompt, "{{QUERY}}", strings.TrimSpace(query))
	return prompt
}

func joinLabels(terms []vocabulary.Term) string {
	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(vocabulary.Labels(terms), ", ")
}

type rawDelta struct {
	Industries    []string `json:"industries"`
	Specialties   []string `json:"specialties"`
	Skills        []string `json:"skills"`
	MinExperience *int     `json:"min_experience"`
	MinScore      *int     `json:"min_score"`
	MinProjects   *int     `json:"min_projects"`
}

func parseResponse(raw string, set *vocabulary.Set) (*interpret.Delta, error) {
	cleaned := extractJSON(raw)

	var data rawDelta
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	delta := &interpret.Delta{
		Industries:  knownLabels(data.Industries, set.Topics),
		Specialties: knownLabels(data.Specialties, set.Formats),
		Skills:      knownLabels(data.Skills, set.Skills),
	}

	delta.MinExperience = nonNegative(data.MinExperience)
	delta.MinScore = nonNegative(data.MinScore)
	delta.MinProjects = nonNegative(data.MinProjects)

	return delta, nil
}

// knownLabels keeps only labels present in the vocabulary, canonically
// spelled, in vocabulary order.
func knownLabels(candidates []string, terms []vocabulary.Term) []string {
	if len(candidates) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		wanted[strings.ToLower(strings.TrimSpace(candidate))] = true
	}

	var kept []string
	for _, term := range terms {
		if wanted[strings.ToLower(term.Label)] {
			kept = append(kept, term.Label)
		}
	}
	return kept
}

func nonNegative(n *int) *int {
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
