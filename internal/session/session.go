package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/ai"
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/ranking"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat history entry. History is append-only; entries are never
// mutated or reordered after insertion.
type Message struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
}

// Session holds the conversation and filter state of one search session and
// runs the interpret, match and rank cycle for each turn.
type Session struct {
	logger   *zap.Logger
	registry *vocabulary.Registry
	deps     filtering.Deps
	fallback ai.Interpreter

	state   *filtering.State
	history []Message
}

func New(logger *zap.Logger, registry *vocabulary.Registry, deps filtering.Deps) *Session {
	return &Session{
		logger:   logger,
		registry: registry,
		deps:     deps,
		state:    filtering.NewState(),
	}
}

// WithFallback attaches an AI interpreter consulted when the deterministic
// pass finds nothing. Optional.
func (s *Session) WithFallback(fallback ai.Interpreter) *Session {
	s.fallback = fallback
	return s
}

func (s *Session) State() *filtering.State {
	return s.state
}

// History returns the chat messages in insertion order.
func (s *Session) History() []Message {
	return s.history
}

// Reset clears the history and restores the default filter state. This is the
// only operation that ever clears either.
func (s *Session) Reset() {
	s.state = filtering.NewState()
	s.history = nil
	s.logger.Info("session reset")
}

// Result is the outcome of one interpreted turn.
type Result struct {
	Delta    *interpret.Delta
	Matched  *interpret.MatchedTerms
	Profiles *talent.Profiles
	Feedback string
}

// Process runs one chat turn: append the user message, interpret it against
// the current vocabularies, fold the delta into the filter state, match and
// rank the candidates, and append the assistant feedback. It never fails on
// textual input; candidates that match nothing are a valid empty result.
func (s *Session) Process(ctx context.Context, text string, candidates *talent.Profiles) (*Result, error) {
	s.append(RoleUser, text)

	delta, matched := interpret.Interpret(text, s.registry.Set())

	if delta.Empty() && s.fallback != nil {
		aiDelta, err := s.fallback.Interpret(ctx, text, s.registry.Set())
		if err != nil {
			// Fallback failures degrade to "nothing identified".
			s.logger.Warn("ai interpretation failed", zap.Error(err))
		} else {
			delta = aiDelta
			matched = interpret.TermsFromDelta(delta, s.registry.Set())
		}
	}

	ApplyDelta(s.state, delta)

	profiles, err := s.search(candidates)
	if err != nil {
		return nil, err
	}

	feedback := interpret.Describe(delta, matched)
	s.append(RoleAssistant, feedback)

	return &Result{
		Delta:    delta,
		Matched:  matched,
		Profiles: profiles,
		Feedback: feedback,
	}, nil
}

// Search applies the current filter state without a chat turn, for manual
// filter edits.
func (s *Session) Search(candidates *talent.Profiles) (*talent.Profiles, error) {
	return s.search(candidates)
}

func (s *Session) search(candidates *talent.Profiles) (*talent.Profiles, error) {
	matched, err := filtering.Match(s.deps, s.state, candidates)
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(matched, s.state.SortOrder)
	return ranked.Head(s.state.ResultCount), nil
}

func (s *Session) append(role, content string) {
	s.history = append(s.history, Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}
