// Package workspace holds the single mutable session state shared by the
// gateway handlers and the chain executor, behind explicit transition
// methods so observers never see a half-applied step.
package workspace

import (
	"strconv"

	"regbench/internal/agent"
)

// Step is the reviewer's current position in the four-view workflow.
type Step string

const (
	StepIngest    Step = "ingest"
	StepAgents    Step = "agents"
	StepRun       Step = "run"
	StepDashboard Step = "dashboard"
)

// RunLogEntry records one completed agent invocation. Output stays editable
// after the fact (handoff correction for the audit trail); Latency and Model
// are fixed at creation.
type RunLogEntry struct {
	AgentName string  `json:"agentName"`
	Model     string  `json:"model"`
	Output    string  `json:"output"`
	Latency   float64 `json:"latency"`
}

// DisplayLatency renders the latency with the two-decimal precision the UI
// shows. Aggregation always uses the full-precision value.
func (e RunLogEntry) DisplayLatency() string {
	return strconv.FormatFloat(e.Latency, 'f', 2, 64)
}

// Metrics are the derived counters shown on the dashboard.
type Metrics struct {
	OCRPages  int     `json:"ocrPages"`
	Chars     int     `json:"chars"`
	AgentsRun int     `json:"agentsRun"`
	Latency   float64 `json:"latency"`
}

// State is the aggregate session state. Snapshots handed out by the store
// are deep copies; mutating one never touches live state.
type State struct {
	RawText   string             `json:"rawText"`
	Agents    []agent.Definition `json:"agents"`
	RunConfig []agent.Definition `json:"agentsRunConfig"`
	RunLog    []RunLogEntry      `json:"runLog"`
	Metrics   Metrics            `json:"metrics"`
	Running   bool               `json:"isRunning"`
	Err       string             `json:"error,omitempty"`
	Step      Step               `json:"step"`
}

func (s State) clone() State {
	out := s
	out.Agents = agent.Clone(s.Agents)
	out.RunConfig = agent.Clone(s.RunConfig)
	out.RunLog = make([]RunLogEntry, len(s.RunLog))
	copy(out.RunLog, s.RunLog)
	return out
}
