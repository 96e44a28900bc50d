package handler

import (
	"context"
	"errors"
	"net/http"

	"regbench/internal/workspace"
)

// runEventBuffer sizes the per-run event channel; the websocket writer
// drains it, but a slow consumer never stalls the chain.
const runEventBuffer = 128

func (s *Service) handleRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input,omitempty"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input := req.Input
	if input == "" {
		input = s.store.Snapshot().RawText
	}

	runID := s.nextRunID()
	s.broker.Allocate(runID, runEventBuffer)

	// The run outlives this request; detach it from the request context.
	// There is deliberately no cancellation primitive mid-run.
	if err := s.executor.Start(context.Background(), runID, input); err != nil {
		// The run never started, so its channel has no consumer to outlive.
		s.broker.Release(runID)
		if errors.Is(err, workspace.ErrBusy) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"runId": runID})
}

func (s *Service) handleRunLogEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index  int    `json:"index"`
		Output string `json:"output"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.EditOutput(req.Index, req.Output); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotView())
}
