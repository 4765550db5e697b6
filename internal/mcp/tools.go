package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the sports package assistant a question. The assistant remembers the conversation and the sport being discussed across calls."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to ask, in Thai or English"),
	),
)

// searchPackagesTool defines the search_packages MCP tool.
var searchPackagesTool = mcp.NewTool("search_packages",
	mcp.WithDescription("Search the package knowledge base semantically. Returns raw passages without conversational processing."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
	mcp.WithString("sport",
		mcp.Description("Restrict results to one sport"),
		mcp.Enum("EPL", "NBA", "NFL", "TENNIS", "GOLF"),
	),
)

// setSportTool defines the set_sport MCP tool.
var setSportTool = mcp.NewTool("set_sport",
	mcp.WithDescription("Manually lock the conversation to a sport, or pass an empty value to clear the lock. Overrides whatever the assistant detected."),
	mcp.WithString("sport",
		mcp.Description("Sport code, or empty to clear"),
		mcp.Enum("EPL", "NBA", "NFL", "TENNIS", "GOLF", ""),
	),
)

// resetSessionTool defines the reset_session MCP tool.
var resetSessionTool = mcp.NewTool("reset_session",
	mcp.WithDescription("Clear the conversation history and all locked context, starting a fresh session."),
)
