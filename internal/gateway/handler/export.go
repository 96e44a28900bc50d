package handler

import (
	"fmt"
	"net/http"
	"time"

	"regbench/internal/export"
)

func (s *Service) handleExport(w http.ResponseWriter, _ *http.Request) {
	payload := export.Build(s.store.Snapshot())
	data, err := export.Encode(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Service) handleExportStore(w http.ResponseWriter, r *http.Request) {
	payload := export.Build(s.store.Snapshot())
	data, err := export.Encode(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	name := export.StampedName(time.Now())
	if err := s.artifacts.Put(r.Context(), name, data); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"artifact": name})
}
