package handler

import (
	"net/http"
)

func (s *Service) handleAgents(w http.ResponseWriter, _ *http.Request) {
	st := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"agents":          st.Agents,
		"agentsRunConfig": st.RunConfig,
	})
}

func (s *Service) handleAgentField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int    `json:"index"`
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.SetAgentField(req.Index, req.Field, req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotView())
}

func (s *Service) handleAgentsReset(w http.ResponseWriter, _ *http.Request) {
	s.store.ResetRunConfig()
	writeJSON(w, http.StatusOK, s.snapshotView())
}
