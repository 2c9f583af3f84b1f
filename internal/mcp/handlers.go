package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zeyadtarek/clm-sentinel/internal/conflicts"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
)

func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	matches := s.engine.SimilarToText(query, limit, similarity.DefaultTextMinScore)
	if len(matches) == 0 {
		return mcp.NewToolResultText("No matching documents found. The corpus may not be indexed yet; run `sentinel index` first."), nil
	}
	return mcp.NewToolResultText(formatMatches(matches)), nil
}

func (s *Server) handleFindSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}
	limit := request.GetInt("limit", 5)
	minScore := request.GetFloat("min_score", similarity.DefaultMinScore)

	matches := s.engine.SimilarTo(docID, limit, minScore)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documents similar to %q above score %.2f.", docID, minScore)), nil
	}
	return mcp.NewToolResultText(formatMatches(matches)), nil
}

func (s *Server) handleAskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	answer, err := s.qa.Ask(ctx, question, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(answer.Answer)
	if len(answer.Sources) > 0 {
		sb.WriteString("\n\nSources:\n")
		for _, src := range answer.Sources {
			fmt.Fprintf(&sb, "  - %s (relevance %.2f)\n", src.FileName, src.Score)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleDetectConflicts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := conflicts.Detect(s.engine.Documents())
	if len(records) == 0 {
		return mcp.NewToolResultText("No conflicts detected across the indexed contracts."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d conflict(s):\n\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(&sb, "[%s] %s: %s\n", rec.Severity, rec.Type, rec.Description)
		for _, obs := range rec.Observations {
			fmt.Fprintf(&sb, "  - %s: %s\n", obs.Document, obs.Value)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleFindExpiring(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := request.GetInt("window_days", s.cfg.AlertWindowDays)

	records := expiry.FindExpiring(s.engine.Documents(), window, time.Now())
	if len(records) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No contracts expire within %d days.", window)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d contract(s) expiring within %d days:\n\n", len(records), window)
	for _, rec := range records {
		fmt.Fprintf(&sb, "[%s] %s", rec.Urgency, rec.FileName)
		if rec.ContractID != "" {
			fmt.Fprintf(&sb, " (%s)", rec.ContractID)
		}
		fmt.Fprintf(&sb, " expires %s (%d days)\n", rec.ExpirationDate, rec.DaysUntilExpiry)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleRunDailyAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep := report.Build(s.engine.Documents(), s.cfg.AlertWindowDays, time.Now())

	if s.reports != nil {
		runID, err := s.reports.SaveRun(ctx, rep, s.engine.Size())
		if err != nil {
			log.Printf("persisting report run: %v", err)
		} else if s.mailer != nil && s.mailer.Enabled() {
			status, detail := "sent", ""
			if err := s.mailer.Send(rep); err != nil {
				status, detail = "failed", err.Error()
				log.Printf("sending report email: %v", err)
			}
			if err := s.reports.LogNotification(ctx, runID, s.cfg.Email.Recipient, notify.Subject(rep), status, detail); err != nil {
				log.Printf("logging notification: %v", err)
			}
		}
	}

	body, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) handleSystemStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Index built: %v\n", s.engine.Built())
	fmt.Fprintf(&sb, "Documents indexed: %d\n", s.engine.Size())
	if s.store != nil {
		fmt.Fprintf(&sb, "Search store documents: %d\n", s.store.Count())
	}
	fmt.Fprintf(&sb, "Contracts directory: %s\n", s.cfg.ContractsDir)
	fmt.Fprintf(&sb, "Alert window: %d days\n", s.cfg.AlertWindowDays)
	fmt.Fprintf(&sb, "LLM provider: %s\n", s.cfg.LLM.Provider)
	fmt.Fprintf(&sb, "Embedding provider: %s\n", s.cfg.Embedding.Provider)
	emailState := "disabled"
	if s.mailer != nil && s.mailer.Enabled() {
		emailState = "enabled (" + s.cfg.Email.Recipient + ")"
	}
	fmt.Fprintf(&sb, "Email delivery: %s\n", emailState)
	return mcp.NewToolResultText(sb.String()), nil
}

// formatMatches renders similarity matches as text for agent consumption.
func formatMatches(matches []similarity.Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Document: %s (id %s)\n", m.FileName, m.DocumentID)
		if m.ContractType != "" {
			fmt.Fprintf(&sb, "Type: %s\n", m.ContractType)
		}
		if len(m.Companies) > 0 {
			fmt.Fprintf(&sb, "Companies: %s\n", strings.Join(m.Companies, ", "))
		}
		fmt.Fprintf(&sb, "Similarity: %.1f%%\n", m.Score*100)
		if m.Preview != "" {
			sb.WriteString("\n")
			sb.WriteString(m.Preview)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
