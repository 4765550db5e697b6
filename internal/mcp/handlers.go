package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// handleAskAssistant runs a full conversational turn.
func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	reply := s.engine.Chat(ctx, question)

	var sb strings.Builder
	sb.WriteString(reply)
	if sport := s.engine.Sport(); sport != "" {
		fmt.Fprintf(&sb, "\n\n[active sport: %s]", sport)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchPackages performs raw semantic search over the passage store.
func (s *Server) handleSearchPackages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	var lock catalog.Sport
	if sportStr := request.GetString("sport", ""); sportStr != "" {
		parsed, ok := catalog.Parse(sportStr)
		if !ok {
			return mcp.NewToolResultError("unknown sport: " + sportStr), nil
		}
		lock = parsed
	}

	// Overfetch so a sport filter still fills the requested limit.
	results, err := s.store.Search(ctx, query, limit*3)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	var filtered []vectordb.SearchResult
	for _, r := range results {
		if !lock.Matches(r.Passage.Metadata.Sports) {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) >= limit {
			break
		}
	}

	if len(filtered) == 0 {
		return mcp.NewToolResultText("No results found. The catalog may not be ingested yet. Run `sportsdesk ingest` to index it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(filtered)), nil
}

// handleSetSport applies a manual sport override to the shared session.
func (s *Server) handleSetSport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sportStr := request.GetString("sport", "")
	if sportStr == "" {
		s.engine.SetSport("")
		return mcp.NewToolResultText("Sport lock cleared; answering across all sports."), nil
	}

	sport, ok := catalog.Parse(sportStr)
	if !ok {
		return mcp.NewToolResultError("unknown sport: " + sportStr), nil
	}
	s.engine.SetSport(sport)
	return mcp.NewToolResultText(fmt.Sprintf("Sport locked to %s.", sport)), nil
}

// handleResetSession clears history and locks.
func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Reset()
	return mcp.NewToolResultText("Session reset."), nil
}

// formatSearchResults renders passages for agent consumption.
func formatSearchResults(results []vectordb.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		md := r.Passage.Metadata
		if md.Package != "" {
			sb.WriteString(fmt.Sprintf("Package: %s\n", md.Package))
		}
		if len(md.Sports) > 0 {
			sb.WriteString(fmt.Sprintf("Sports: %s\n", catalog.JoinTags(md.Sports)))
		}
		if md.SourceFile != "" {
			sb.WriteString(fmt.Sprintf("Source: %s\n", md.SourceFile))
		}
		sb.WriteString(fmt.Sprintf("Similarity: %.1f%%\n", r.Similarity*100))

		sb.WriteString("\n")
		sb.WriteString(r.Passage.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
