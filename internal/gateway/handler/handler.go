// Package handler exposes the workbench over JSON REST plus a websocket
// event stream consumed by the browser UI.
package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"regbench/internal/chain"
	"regbench/internal/export"
	"regbench/internal/ingest"
	"regbench/internal/workspace"
)

// Service holds the core collaborators behind every endpoint.
type Service struct {
	store     *workspace.Store
	adapter   *ingest.Adapter
	executor  *chain.Executor
	broker    *chain.Broker
	artifacts export.Store

	runSeq atomic.Uint64
}

func NewService(store *workspace.Store, adapter *ingest.Adapter, executor *chain.Executor, broker *chain.Broker, artifacts export.Store) *Service {
	return &Service{
		store:     store,
		adapter:   adapter,
		executor:  executor,
		broker:    broker,
		artifacts: artifacts,
	}
}

func (s *Service) nextRunID() string {
	return fmt.Sprintf("run-%06d", s.runSeq.Add(1))
}

// BuildMux registers all endpoints on a new ServeMux.
func BuildMux(s *Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/step", s.handleStep)
	mux.HandleFunc("POST /api/ingest/text", s.handleIngestText)
	mux.HandleFunc("POST /api/ingest/pdf", s.handleIngestPDF)
	mux.HandleFunc("POST /api/rawtext", s.handleRawText)
	mux.HandleFunc("GET /api/agents", s.handleAgents)
	mux.HandleFunc("POST /api/agents/field", s.handleAgentField)
	mux.HandleFunc("POST /api/agents/reset", s.handleAgentsReset)
	mux.HandleFunc("POST /api/run", s.handleRun)
	mux.HandleFunc("POST /api/runlog/edit", s.handleRunLogEdit)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/export/store", s.handleExportStore)
	mux.HandleFunc("GET /api/ws", s.handleWS)
	return mux
}

func (s *Service) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
