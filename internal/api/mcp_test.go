package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/scribesearch/talent-scout/internal/contently"
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/session"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

type mockSource struct {
	profiles *talent.Profiles
	err      error
}

func (m *mockSource) Profiles(_ context.Context) (*talent.Profiles, error) {
	return m.profiles, m.err
}

type mockOptions struct{}

func (mockOptions) GetDropdownOptions() (*contently.DropdownOptions, error) {
	return &contently.DropdownOptions{
		Skills: []contently.SkillOption{{ID: 7, Name: "SEO"}},
		Topics: []contently.Option{{Value: "12", Label: "Healthcare"}},
	}, nil
}

func newTestMCPDeps(t *testing.T) MCPDeps {
	t.Helper()

	registry := vocabulary.NewRegistry(mockOptions{}, zap.NewNop())
	registry.Load()

	return MCPDeps{
		Session:  session.New(zap.NewNop(), registry, filtering.Deps{}),
		Registry: registry,
		Source: &mockSource{profiles: &talent.Profiles{
			Items: []*talent.Profile{
				{ID: 1, Name: "Ada", Skills: []string{"SEO"}, Score: 9.0},
				{ID: 2, Name: "Ben", Skills: []string{"Copywriting"}, Score: 8.0},
			},
		}},
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("expected content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPTool_SearchTalent(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpSearchTalent(deps)

	req := makeCallToolRequest("search_talent", map[string]interface{}{
		"query": "SEO writers",
	})

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}

	text := toolText(t, result)
	if !strings.Contains(text, "Ada") || strings.Contains(text, "Ben") {
		t.Fatalf("expected only the SEO profile in response: %s", text)
	}
	if !strings.Contains(text, "Skills: SEO") {
		t.Fatalf("expected feedback in response: %s", text)
	}

	// The turn landed in the shared session state.
	if len(deps.Session.State().SelectedSkills) != 1 {
		t.Fatalf("expected the session filters to accumulate")
	}
}

func TestMCPTool_SearchTalentMissingQuery(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpSearchTalent(deps)

	result, err := handler(context.Background(), makeCallToolRequest("search_talent", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected an error result for a missing query")
	}
}

func TestMCPTool_SearchTalentSourceFailure(t *testing.T) {
	deps := newTestMCPDeps(t)
	deps.Source = &mockSource{err: errors.New("platform down")}
	handler := mcpSearchTalent(deps)

	result, err := handler(context.Background(), makeCallToolRequest("search_talent", map[string]interface{}{
		"query": "SEO writers",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected an error result when the source fails")
	}
}

func TestMCPTool_ListVocabulary(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpListVocabulary(deps)

	result, err := handler(context.Background(), makeCallToolRequest("list_vocabulary", map[string]interface{}{
		"category": "skill",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), "SEO") {
		t.Fatalf("expected SEO in skill terms: %s", toolText(t, result))
	}

	// Empty known category answers with an empty list, not an error.
	result, _ = handler(context.Background(), makeCallToolRequest("list_vocabulary", map[string]interface{}{
		"category": "language",
	}))
	if result.IsError {
		t.Fatalf("empty category must not be an error")
	}

	result, _ = handler(context.Background(), makeCallToolRequest("list_vocabulary", map[string]interface{}{
		"category": "bogus",
	}))
	if !result.IsError {
		t.Fatalf("unknown category must be an error result")
	}
}

func TestMCPTool_ResetSession(t *testing.T) {
	deps := newTestMCPDeps(t)

	search := mcpSearchTalent(deps)
	if _, err := search(context.Background(), makeCallToolRequest("search_talent", map[string]interface{}{
		"query": "SEO writers",
	})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reset := mcpResetSession(deps)
	if _, err := reset(context.Background(), makeCallToolRequest("reset_session", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(deps.Session.History()) != 0 || len(deps.Session.State().SelectedSkills) != 0 {
		t.Fatalf("expected session cleared")
	}
}
