package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zeyadtarek/clm-sentinel/internal/conflicts"
	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
	"github.com/zeyadtarek/clm-sentinel/internal/ingest"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryInt(r *http.Request, key string, def int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	if raw := r.URL.Query().Get(key); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return def
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":            "ok",
		"index_built":       s.engine.Built(),
		"documents_indexed": s.engine.Size(),
		"alert_window_days": s.cfg.AlertWindowDays,
		"llm_provider":      string(s.cfg.LLM.Provider),
	}
	if s.store != nil {
		status["search_store_documents"] = s.store.Count()
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := queryInt(r, "limit", 5)
	minScore := queryFloat(r, "min_score", similarity.DefaultTextMinScore)

	matches := s.engine.SimilarToText(query, limit, minScore)
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": emptyIfNil(matches),
	})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := queryInt(r, "limit", 5)
	minScore := queryFloat(r, "min_score", similarity.DefaultMinScore)

	matches := s.engine.SimilarTo(id, limit, minScore)
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": id,
		"results":     emptyIfNil(matches),
	})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	threshold := queryFloat(r, "threshold", s.cfg.DuplicateThreshold)

	groups := s.engine.DuplicateGroups(threshold)
	writeJSON(w, http.StatusOK, map[string]any{
		"threshold": threshold,
		"groups":    emptyIfNil(groups),
	})
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	k := queryInt(r, "k", 3)
	if k <= 0 {
		writeError(w, http.StatusBadRequest, "k must be positive")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"k":        k,
		"clusters": s.engine.Cluster(k),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.PairwiseStats())
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.engine.ExportMatrix(w); err != nil {
		log.Printf("exporting matrix: %v", err)
	}
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	records := conflicts.Detect(s.engine.Documents())
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(records),
		"conflicts": emptyIfNil(records),
	})
}

func (s *Server) handleExpiring(w http.ResponseWriter, r *http.Request) {
	window := queryInt(r, "window", s.cfg.AlertWindowDays)

	records := expiry.FindExpiring(s.engine.Documents(), window, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"alert_window_days":  window,
		"total":              len(records),
		"expiring_contracts": emptyIfNil(records),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.qa == nil {
		writeError(w, http.StatusServiceUnavailable, "question answering is not configured")
		return
	}

	var req struct {
		Question   string `json:"question"`
		MaxResults int    `json:"max_results"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.qa.Ask(r.Context(), req.Question, req.MaxResults)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	rep := report.Build(s.engine.Documents(), s.cfg.AlertWindowDays, time.Now())

	response := map[string]any{"report": rep}

	if s.cfg.ReportsDir != "" {
		if path, err := s.saveReportFile(rep); err != nil {
			log.Printf("saving report file: %v", err)
		} else {
			response["report_file"] = path
		}
	}

	if s.reports != nil {
		runID, err := s.reports.SaveRun(r.Context(), rep, s.engine.Size())
		if err != nil {
			log.Printf("persisting report run: %v", err)
		} else {
			response["run_id"] = runID
			s.deliverReport(r, runID, rep)
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) saveReportFile(rep report.DailyReport) (string, error) {
	if err := os.MkdirAll(s.cfg.ReportsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(s.cfg.ReportsDir, rep.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	if err := report.WriteJSON(f, rep); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Server) deliverReport(r *http.Request, runID string, rep report.DailyReport) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	subject := notify.Subject(rep)
	status, detail := "sent", ""
	if err := s.mailer.Send(rep); err != nil {
		status, detail = "failed", err.Error()
		log.Printf("sending report email: %v", err)
	}
	if err := s.reports.LogNotification(r.Context(), runID, s.cfg.Email.Recipient, subject, status, detail); err != nil {
		log.Printf("logging notification: %v", err)
	}
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report history is not configured")
		return
	}

	runs, err := s.reports.ListRuns(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": emptyIfNil(runs)})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report history is not configured")
		return
	}

	rep, ok, err := s.reports.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "report run not found")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	result, err := ingest.Run(r.Context(), s.engine, ingest.Options{
		Loader: corpus.LoaderConfig{
			Dir:     s.cfg.ContractsDir,
			Include: s.cfg.Include,
			Exclude: s.cfg.Exclude,
		},
		Store: s.store,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents_indexed": result.Documents,
		"elapsed_ms":        result.Elapsed.Milliseconds(),
	})
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
