// Package mcp exposes the package assistant over the Model Context Protocol
// so agent tooling can query the catalog and hold a conversation.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/nonthaphat/sportsdesk/internal/chat"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing the sports package assistant. One MCP
// session maps to one conversation engine: the stdio transport is single
// client by nature, so a single shared engine keeps the sticky context
// consistent across tool calls.
type Server struct {
	engine *chat.Engine
	store  vectordb.PassageStore
	mcp    *server.MCPServer
}

// NewServer creates an MCP server over the given engine and passage store.
func NewServer(engine *chat.Engine, store vectordb.PassageStore) *Server {
	s := &Server{
		engine: engine,
		store:  store,
	}

	s.mcp = server.NewMCPServer(
		"sportsdesk",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
	s.mcp.AddTool(searchPackagesTool, s.handleSearchPackages)
	s.mcp.AddTool(setSportTool, s.handleSetSport)
	s.mcp.AddTool(resetSessionTool, s.handleResetSession)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
