package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scribesearch/talent-scout/internal/session"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"
)

// ProfileSource supplies the candidate collection for one search.
type ProfileSource interface {
	Profiles(ctx context.Context) (*talent.Profiles, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Session  *session.Session
	Registry *vocabulary.Registry
	Source   ProfileSource
}

// NewMCPServer creates an MCP server exposing the search core as agent tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"talent-scout",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("talent-scout — natural-language talent search over the platform's candidate profiles."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_talent",
			mcp.WithDescription("Interpret a natural-language request, fold it into the session filters, and return the matched, ranked profiles."),
			mcp.WithString("query", mcp.Description("Free-text search request"), mcp.Required()),
		),
		mcpSearchTalent(deps),
	)

	s.AddTool(
		mcp.NewTool("list_vocabulary",
			mcp.WithDescription("List the known vocabulary terms for a category: format, topic, skill, language, or publication."),
			mcp.WithString("category", mcp.Description("Vocabulary category"), mcp.Required()),
		),
		mcpListVocabulary(deps),
	)

	s.AddTool(
		mcp.NewTool("reset_session",
			mcp.WithDescription("Clear the chat history and restore the default filters."),
		),
		mcpResetSession(deps),
	)

	return s
}

func mcpSearchTalent(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		candidates, err := deps.Source.Profiles(ctx)
		if err != nil {
			return mcpError(fmt.Sprintf("fetching candidates failed: %v", err)), nil
		}

		result, err := deps.Session.Process(ctx, query, candidates)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}

		payload := map[string]any{
			"feedback": result.Feedback,
			"profiles": result.Profiles.Items,
		}
		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return mcpError(fmt.Sprintf("encoding result failed: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpListVocabulary(deps MCPDeps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := req.RequireString("category")
		if err != nil {
			return mcpError("category is required"), nil
		}

		cat := vocabulary.Category(category)
		if !cat.Valid() {
			return mcpError(fmt.Sprintf("unknown category %q", category)), nil
		}

		terms := deps.Registry.Set().ByCategory(cat)
		if terms == nil {
			terms = []vocabulary.Term{}
		}

		b, err := json.MarshalIndent(terms, "", "  ")
		if err != nil {
			return mcpError(fmt.Sprintf("encoding terms failed: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpResetSession(deps MCPDeps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deps.Session.Reset()
		return mcpText("Session reset: history cleared, default filters restored."), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
