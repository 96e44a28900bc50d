package workspace

import (
	"errors"
	"fmt"
	"sync"

	"regbench/internal/agent"
)

// ErrBusy is returned when a run start arrives while another run is in
// flight. Overlapping runs are a defined rejection, not undefined behavior.
var ErrBusy = errors.New("workspace: a chain run is already in progress")

// autoAdvanceGrowth is the paste-heuristic threshold: an edit that grows the
// raw text by more than this many characters while on the ingest step moves
// the reviewer to agent configuration automatically.
const autoAdvanceGrowth = 200

// Store is the injectable state container. Every mutation goes through a
// transition method under the one mutex; run-scoped transitions carry a
// generation token so a late write from an abandoned run is a no-op.
type Store struct {
	mu  sync.Mutex
	gen uint64
	st  State
}

// NewStore creates a store seeded with the given base agent list. The run
// configuration starts as an independent deep copy of it.
func NewStore(base []agent.Definition) *Store {
	return &Store{st: State{
		Agents:    agent.Clone(base),
		RunConfig: agent.Clone(base),
		Step:      StepIngest,
	}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

// SetStep moves the reviewer to an explicit workflow step. Manual navigation
// is never blocked by the paste heuristic.
func (s *Store) SetStep(step Step) {
	s.mu.Lock()
	s.st.Step = step
	s.mu.Unlock()
}

// SetRawText replaces the document text wholesale and keeps Metrics.Chars in
// lock step. Returns true when the paste heuristic advanced the step.
func (s *Store) SetRawText(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := len(s.st.RawText)
	s.st.RawText = text
	s.st.Metrics.Chars = len(text)
	if s.st.Step == StepIngest && len(text) > prev+autoAdvanceGrowth {
		s.st.Step = StepAgents
		return true
	}
	return false
}

// SetIngested records the outcome of a document ingestion: the (possibly
// partial) recognized text, the number of OCR'd pages, and an error message
// when recognition stopped early. Partial text is retained either way.
func (s *Store) SetIngested(text string, ocrPages int, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.RawText = text
	s.st.Metrics.Chars = len(text)
	s.st.Metrics.OCRPages = ocrPages
	s.st.Err = errMsg
	if errMsg == "" {
		s.st.Step = StepAgents
	}
}

// SetAgentField edits one field of the run configuration. The base agent
// list is never reachable through this path.
func (s *Store) SetAgentField(index int, fieldPath, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return agent.SetField(s.st.RunConfig, index, fieldPath, value)
}

// ResetRunConfig re-snapshots the run configuration from the base agents,
// discarding all pre-run edits.
func (s *Store) ResetRunConfig() {
	s.mu.Lock()
	s.st.RunConfig = agent.Clone(s.st.Agents)
	s.mu.Unlock()
}

// BeginRun transitions Idle -> Running: clears the run log and the last
// error, raises the running flag, and bumps the generation counter. The
// returned definitions are a deep copy frozen for this run.
func (s *Store) BeginRun() (gen uint64, defs []agent.Definition, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Running {
		return 0, nil, ErrBusy
	}
	s.gen++
	s.st.RunLog = s.st.RunLog[:0:0]
	s.st.Err = ""
	s.st.Running = true
	s.st.Metrics.AgentsRun = 0
	s.st.Metrics.Latency = 0
	s.st.Step = StepRun
	return s.gen, agent.Clone(s.st.RunConfig), nil
}

// AppendEntry appends a completed invocation to the run log. The entry is
// visible to observers immediately. Returns false when gen is stale.
func (s *Store) AppendEntry(gen uint64, e RunLogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || !s.st.Running {
		return false
	}
	s.st.RunLog = append(s.st.RunLog, e)
	return true
}

// FinishRun transitions Running -> Completed/Failed. Metrics are derived
// from whatever prefix of the chain completed. Stale generations are
// dropped.
func (s *Store) FinishRun(gen uint64, runErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || !s.st.Running {
		return false
	}
	s.st.Running = false
	if runErr != nil {
		s.st.Err = runErr.Error()
	}
	s.st.Metrics.AgentsRun = len(s.st.RunLog)
	var total float64
	for _, e := range s.st.RunLog {
		total += e.Latency
	}
	s.st.Metrics.Latency = total
	if runErr == nil {
		s.st.Step = StepDashboard
	}
	return true
}

// EditOutput replaces the output text of one completed run-log entry. The
// entry's latency and model are untouched, and no downstream agent is
// re-triggered; this is an audit-trail correction only.
func (s *Store) EditOutput(index int, newText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.st.RunLog) {
		return fmt.Errorf("run log index %d out of range (0..%d)", index, len(s.st.RunLog)-1)
	}
	s.st.RunLog[index].Output = newText
	return nil
}
