package handler

import (
	"log"
	"net/http"
)

// maxUploadBytes caps PDF uploads at 64 MiB.
const maxUploadBytes = 64 << 20

// IngestTopic is the event-stream topic ingestion progress is published on.
// The UI connects to /api/ws?run_id=ingest before uploading.
const IngestTopic = "ingest"

func (s *Service) handleIngestText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.adapter.IngestText(req.Text)
	writeJSON(w, http.StatusOK, s.snapshotView())
}

func (s *Service) handleRawText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	advanced := s.store.SetRawText(req.Text)
	view := s.snapshotView()
	writeJSON(w, http.StatusOK, map[string]any{"state": view, "advanced": advanced})
}

func (s *Service) handleIngestPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	log.Printf("ingesting PDF %q (%d bytes)", header.Filename, header.Size)
	pages, err := s.adapter.IngestPDF(r.Context(), file)
	if err != nil {
		// Partial text, if any, is already in the workspace; surface the
		// failure as a recoverable state, not a 5xx with no body.
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": err.Error(),
			"state": s.snapshotView(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages, "state": s.snapshotView()})
}
