// Package mcp exposes the contract analysis engine as MCP tools over
// stdio, so AI agents can search contracts, detect conflicts, and run
// daily analyses.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/rag"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing contract analysis tools.
type Server struct {
	cfg     *config.Config
	engine  *similarity.Engine
	qa      *rag.Pipeline
	store   vectordb.Store
	reports *report.Store
	mailer  *notify.Mailer
	mcp     *server.MCPServer
}

// NewServer creates an MCP server with the given dependencies. store,
// reports, and mailer may be nil.
func NewServer(cfg *config.Config, engine *similarity.Engine, qa *rag.Pipeline, store vectordb.Store, reports *report.Store, mailer *notify.Mailer) *Server {
	s := &Server{
		cfg:     cfg,
		engine:  engine,
		qa:      qa,
		store:   store,
		reports: reports,
		mailer:  mailer,
	}

	s.mcp = server.NewMCPServer(
		"sentinel",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(findSimilarTool, s.handleFindSimilar)
	s.mcp.AddTool(askQuestionTool, s.handleAskQuestion)
	s.mcp.AddTool(detectConflictsTool, s.handleDetectConflicts)
	s.mcp.AddTool(findExpiringTool, s.handleFindExpiring)
	s.mcp.AddTool(runDailyAnalysisTool, s.handleRunDailyAnalysis)
	s.mcp.AddTool(systemStatusTool, s.handleSystemStatus)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
