package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocumentsTool defines the search_documents MCP tool.
var searchDocumentsTool = mcp.NewTool("search_documents",
	mcp.WithDescription("Search the contract corpus by free text. Returns the most relevant documents with similarity scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
)

// findSimilarTool defines the find_similar_documents MCP tool.
var findSimilarTool = mcp.NewTool("find_similar_documents",
	mcp.WithDescription("Find documents similar to a given indexed document."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("ID of the reference document"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
	mcp.WithNumber("min_score",
		mcp.Description("Minimum cosine similarity (default 0.3)"),
	),
)

// askQuestionTool defines the ask_question MCP tool.
var askQuestionTool = mcp.NewTool("ask_question",
	mcp.WithDescription("Ask a natural-language question about the contracts. The answer cites its source documents."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question to answer"),
	),
	mcp.WithNumber("max_results",
		mcp.Description("Maximum number of documents to retrieve as context (default 5)"),
	),
)

// detectConflictsTool defines the detect_conflicts MCP tool.
var detectConflictsTool = mcp.NewTool("detect_conflicts",
	mcp.WithDescription("Detect address, expiration-date, and contact conflicts across the indexed contracts."),
)

// findExpiringTool defines the find_expiring_contracts MCP tool.
var findExpiringTool = mcp.NewTool("find_expiring_contracts",
	mcp.WithDescription("List contracts expiring within the alert window, most urgent first."),
	mcp.WithNumber("window_days",
		mcp.Description("Alert window in days (default from configuration)"),
	),
)

// runDailyAnalysisTool defines the run_daily_analysis MCP tool.
var runDailyAnalysisTool = mcp.NewTool("run_daily_analysis",
	mcp.WithDescription("Run the full daily analysis: expirations, conflicts, summary, and recommendations. Persists the run and sends the report email when configured."),
)

// systemStatusTool defines the get_system_status MCP tool.
var systemStatusTool = mcp.NewTool("get_system_status",
	mcp.WithDescription("Report the state of the analysis engine: index size, search store, and configured backends."),
)
