package session

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/contently"
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

type optionsStub struct {
	options *contently.DropdownOptions
}

func (s *optionsStub) GetDropdownOptions() (*contently.DropdownOptions, error) {
	return s.options, nil
}

type fallbackStub struct {
	delta  *interpret.Delta
	err    error
	called bool
}

func (f *fallbackStub) Interpret(_ context.Context, _ string, _ *vocabulary.Set) (*interpret.Delta, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.delta, nil
}

func loadedRegistry(t *testing.T) *vocabulary.Registry {
	t.Helper()
	registry := vocabulary.NewRegistry(&optionsStub{options: &contently.DropdownOptions{
		Skills: []contently.SkillOption{{ID: 7, Name: "SEO"}},
		Topics: []contently.Option{{Value: "12", Label: "Healthcare"}},
	}}, zap.NewNop())
	registry.Load()
	return registry
}

func sessionCandidates() *talent.Profiles {
	return &talent.Profiles{
		Items: []*talent.Profile{
			{ID: 1, Name: "Ada", Skills: []string{"SEO"}, Industries: []string{"Healthcare"}, Score: 9.0},
			{ID: 2, Name: "Ben", Skills: []string{"Copywriting"}, Industries: []string{"Fintech"}, Score: 8.5},
			{ID: 3, Name: "Cora", Skills: []string{"SEO"}, Industries: []string{"Healthcare"}, Score: 6.0},
		},
	}
}

func TestProcessAccumulatesState(t *testing.T) {
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{})

	result, err := sess.Process(context.Background(), "expert SEO writers", sessionCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.Profiles.IDs(), []int{1}) {
		t.Fatalf("expected only the high-score SEO profile, got %v", result.Profiles.IDs())
	}

	state := sess.State()
	if !reflect.DeepEqual(state.SelectedSkills, []string{"SEO"}) {
		t.Fatalf("expected SEO accumulated, got %v", state.SelectedSkills)
	}
	if state.MinScore == nil || *state.MinScore != 8 {
		t.Fatalf("expected minScore 8, got %v", state.MinScore)
	}

	// Second turn adds, never resets.
	if _, err := sess.Process(context.Background(), "healthcare focus", sessionCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(state.SelectedSkills, []string{"SEO"}) {
		t.Fatalf("skills must survive later turns, got %v", state.SelectedSkills)
	}
	if !reflect.DeepEqual(state.SelectedIndustries, []string{"Healthcare"}) {
		t.Fatalf("expected Healthcare accumulated, got %v", state.SelectedIndustries)
	}
}

func TestProcessHistoryAppendOnly(t *testing.T) {
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{})

	_, err := sess.Process(context.Background(), "SEO please", sessionCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Fatalf("unexpected roles: %s %s", history[0].Role, history[1].Role)
	}
	if history[0].ID == history[1].ID || history[0].ID == "" {
		t.Fatalf("message ids must be unique and set")
	}

	_, _ = sess.Process(context.Background(), "more", sessionCandidates())
	if got := sess.History(); len(got) != 4 || got[0].ID != history[0].ID {
		t.Fatalf("history must grow monotonically")
	}
}

func TestProcessFallback(t *testing.T) {
	fallback := &fallbackStub{delta: &interpret.Delta{Skills: []string{"SEO"}}}
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{}).WithFallback(fallback)

	// Deterministic pass finds nothing here, so the fallback is consulted.
	result, err := sess.Process(context.Background(), "someone for search engines", sessionCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fallback.called {
		t.Fatalf("expected fallback to be consulted")
	}
	if !reflect.DeepEqual(sess.State().SelectedSkills, []string{"SEO"}) {
		t.Fatalf("fallback delta must be applied, got %v", sess.State().SelectedSkills)
	}
	if !reflect.DeepEqual(result.Profiles.IDs(), []int{1, 3}) {
		t.Fatalf("expected SEO matches, got %v", result.Profiles.IDs())
	}
}

func TestProcessFallbackFeedbackNamesFilters(t *testing.T) {
	fallback := &fallbackStub{delta: &interpret.Delta{
		Skills:     []string{"SEO"},
		Industries: []string{"Healthcare"},
	}}
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{}).WithFallback(fallback)

	result, err := sess.Process(context.Background(), "someone for search engines", sessionCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The applied delta must be reported, not the deterministic pass's miss.
	if !strings.Contains(result.Feedback, "Skills: SEO") {
		t.Fatalf("feedback must name the applied skills, got %q", result.Feedback)
	}
	if !strings.Contains(result.Feedback, "Topics: Healthcare") {
		t.Fatalf("feedback must name the applied topics, got %q", result.Feedback)
	}
	if strings.Contains(result.Feedback, "couldn't identify") {
		t.Fatalf("feedback claims nothing identified while filters changed: %q", result.Feedback)
	}
}

func TestProcessFallbackNotConsultedOnMatch(t *testing.T) {
	fallback := &fallbackStub{delta: &interpret.Delta{}}
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{}).WithFallback(fallback)

	if _, err := sess.Process(context.Background(), "SEO writers", sessionCandidates()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fallback.called {
		t.Fatalf("fallback must not run when the deterministic pass matched")
	}
}

func TestProcessFallbackFailureDegrades(t *testing.T) {
	fallback := &fallbackStub{err: errors.New("quota exceeded")}
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{}).WithFallback(fallback)

	result, err := sess.Process(context.Background(), "anything at all", sessionCandidates())
	if err != nil {
		t.Fatalf("fallback failure must not fail the turn: %v", err)
	}
	if result.Profiles.Len() != 3 {
		t.Fatalf("state untouched, all candidates remain: %v", result.Profiles.IDs())
	}
	if result.Feedback == "" {
		t.Fatalf("expected the fixed no-filters feedback")
	}
}

func TestReset(t *testing.T) {
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{})
	_, _ = sess.Process(context.Background(), "expert SEO", sessionCandidates())

	sess.Reset()

	if len(sess.History()) != 0 {
		t.Fatalf("reset must clear history")
	}
	state := sess.State()
	if len(state.SelectedSkills) != 0 || state.MinScore != nil {
		t.Fatalf("reset must restore defaults, got %+v", state)
	}
	if state.ResultCount != filtering.DefaultResultCount {
		t.Fatalf("unexpected result count: %d", state.ResultCount)
	}
}

func TestProcessResultCountWindow(t *testing.T) {
	sess := New(zap.NewNop(), loadedRegistry(t), filtering.Deps{})
	sess.State().ResultCount = 1

	result, err := sess.Process(context.Background(), "healthcare", sessionCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two healthcare profiles match; the window keeps the leading one.
	if !reflect.DeepEqual(result.Profiles.IDs(), []int{1}) {
		t.Fatalf("expected a 1-profile window, got %v", result.Profiles.IDs())
	}
}
