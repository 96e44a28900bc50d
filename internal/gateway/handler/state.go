package handler

import (
	"fmt"
	"net/http"

	"regbench/internal/workspace"
)

// stateView is the workspace snapshot the UI binds to, with derived fields
// (display latencies, completion level) resolved server-side.
type stateView struct {
	workspace.State
	RunLogDisplay []string        `json:"runLogLatencyDisplay"`
	Completion    workspace.Level `json:"completion"`
}

func (s *Service) snapshotView() stateView {
	st := s.store.Snapshot()
	display := make([]string, 0, len(st.RunLog))
	for _, e := range st.RunLog {
		display = append(display, e.DisplayLatency())
	}
	return stateView{
		State:         st,
		RunLogDisplay: display,
		Completion:    workspace.Completion(st.Metrics),
	}
}

func (s *Service) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotView())
}

func (s *Service) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	st := s.store.Snapshot()
	avg := 0.0
	if st.Metrics.AgentsRun > 0 {
		avg = st.Metrics.Latency / float64(st.Metrics.AgentsRun)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics":        st.Metrics,
		"averageLatency": avg,
		"completion":     workspace.Completion(st.Metrics),
	})
}

func (s *Service) handleStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step string `json:"step"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	switch workspace.Step(req.Step) {
	case workspace.StepIngest, workspace.StepAgents, workspace.StepRun, workspace.StepDashboard:
		s.store.SetStep(workspace.Step(req.Step))
		writeJSON(w, http.StatusOK, s.snapshotView())
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown step %q", req.Step))
	}
}
