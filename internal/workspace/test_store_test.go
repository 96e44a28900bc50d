package workspace

import (
	"errors"
	"testing"

	"regbench/internal/agent"
	"regbench/internal/tester"
)

func twoAgents() []agent.Definition {
	return []agent.Definition{
		{Name: "a", Model: "m1", Params: agent.Params{Temperature: 0.1, MaxOutputTokens: 512}},
		{Name: "b", Model: "m2", Params: agent.Params{Temperature: 0.2, MaxOutputTokens: 512}},
	}
}

func TestCharsTracksRawText(t *testing.T) {
	s := NewStore(twoAgents())
	s.SetRawText("hello")
	st := s.Snapshot()
	tester.Eq(t, st.Metrics.Chars, len(st.RawText))

	s.SetRawText("")
	st = s.Snapshot()
	tester.Eq(t, st.Metrics.Chars, 0)
}

func TestAutoAdvanceOnLargePaste(t *testing.T) {
	s := NewStore(twoAgents())
	tester.Eq(t, s.Snapshot().Step, StepIngest)

	advanced := s.SetRawText(string(make([]byte, 150)))
	tester.False(t, advanced, "growth under threshold must not advance")
	tester.Eq(t, s.Snapshot().Step, StepIngest)

	advanced = s.SetRawText(string(make([]byte, 500)))
	tester.True(t, advanced, "growth over threshold advances to agents")
	tester.Eq(t, s.Snapshot().Step, StepAgents)

	// Off the ingest step the heuristic never fires.
	s.SetStep(StepDashboard)
	advanced = s.SetRawText(string(make([]byte, 5000)))
	tester.False(t, advanced)
	tester.Eq(t, s.Snapshot().Step, StepDashboard)
}

func TestRunConfigEditsNeverTouchBase(t *testing.T) {
	s := NewStore(twoAgents())
	tester.NoErr(t, s.SetAgentField(0, "systemPrompt", "edited"))
	st := s.Snapshot()
	tester.Eq(t, st.RunConfig[0].SystemPrompt, "edited")
	tester.Eq(t, st.Agents[0].SystemPrompt, "")

	s.ResetRunConfig()
	tester.Eq(t, s.Snapshot().RunConfig[0].SystemPrompt, "")
}

func TestBeginRunClearsLogAndError(t *testing.T) {
	s := NewStore(twoAgents())
	gen, defs, err := s.BeginRun()
	tester.NoErr(t, err)
	tester.Eq(t, len(defs), 2)
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "a", Latency: 1.5}))
	tester.True(t, s.FinishRun(gen, errors.New("boom")))

	st := s.Snapshot()
	tester.Eq(t, len(st.RunLog), 1)
	tester.Eq(t, st.Err, "boom")
	tester.Eq(t, st.Metrics.AgentsRun, 1)

	gen2, _, err := s.BeginRun()
	tester.NoErr(t, err)
	st = s.Snapshot()
	tester.Eq(t, len(st.RunLog), 0, "new run starts with an empty log")
	tester.Eq(t, st.Err, "", "new run clears the previous error")
	tester.True(t, st.Running)
	tester.True(t, s.FinishRun(gen2, nil))
}

func TestBeginRunRejectsOverlap(t *testing.T) {
	s := NewStore(twoAgents())
	gen, _, err := s.BeginRun()
	tester.NoErr(t, err)

	_, _, err = s.BeginRun()
	tester.True(t, errors.Is(err, ErrBusy), "second start must fail fast")
	tester.True(t, s.FinishRun(gen, nil))
}

func TestStaleGenerationWritesDropped(t *testing.T) {
	s := NewStore(twoAgents())
	oldGen, _, err := s.BeginRun()
	tester.NoErr(t, err)
	tester.True(t, s.FinishRun(oldGen, errors.New("abandoned")))

	newGen, _, err := s.BeginRun()
	tester.NoErr(t, err)

	tester.False(t, s.AppendEntry(oldGen, RunLogEntry{AgentName: "ghost"}), "stale append dropped")
	tester.False(t, s.FinishRun(oldGen, nil), "stale finish dropped")

	tester.True(t, s.AppendEntry(newGen, RunLogEntry{AgentName: "a", Latency: 0.5}))
	tester.True(t, s.FinishRun(newGen, nil))
	st := s.Snapshot()
	tester.Eq(t, len(st.RunLog), 1)
	tester.Eq(t, st.RunLog[0].AgentName, "a")
	tester.False(t, st.Running)
}

func TestFinishRunDerivesMetricsFromPrefix(t *testing.T) {
	s := NewStore(twoAgents())
	gen, _, err := s.BeginRun()
	tester.NoErr(t, err)
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "a", Latency: 1.25}))
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "b", Latency: 0.75}))
	tester.True(t, s.FinishRun(gen, nil))

	st := s.Snapshot()
	tester.Eq(t, st.Metrics.AgentsRun, 2)
	tester.Close(t, st.Metrics.Latency, 2.0, 1e-9)
	tester.Eq(t, st.Step, StepDashboard)
}

func TestEditOutputIsIsolated(t *testing.T) {
	s := NewStore(twoAgents())
	gen, _, err := s.BeginRun()
	tester.NoErr(t, err)
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "a", Model: "m1", Output: "one", Latency: 1.0}))
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "b", Model: "m2", Output: "two", Latency: 2.0}))
	tester.True(t, s.FinishRun(gen, nil))
	before := s.Snapshot()

	tester.NoErr(t, s.EditOutput(0, "corrected"))
	after := s.Snapshot()
	tester.Eq(t, after.RunLog[0].Output, "corrected")
	tester.Eq(t, after.RunLog[0].Latency, before.RunLog[0].Latency)
	tester.Eq(t, after.RunLog[0].Model, before.RunLog[0].Model)
	tester.Eq(t, after.RunLog[1], before.RunLog[1], "other entries untouched")
	tester.Eq(t, after.Metrics.Latency, before.Metrics.Latency, "metrics not recomputed on edit")

	tester.ErrContains(t, s.EditOutput(5, "x"), "out of range")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := NewStore(twoAgents())
	gen, _, err := s.BeginRun()
	tester.NoErr(t, err)
	tester.True(t, s.AppendEntry(gen, RunLogEntry{AgentName: "a", Output: "orig"}))
	tester.True(t, s.FinishRun(gen, nil))

	snap := s.Snapshot()
	snap.RunLog[0].Output = "mutated"
	snap.RunConfig[0].Name = "mutated"
	st := s.Snapshot()
	tester.Eq(t, st.RunLog[0].Output, "orig")
	tester.Eq(t, st.RunConfig[0].Name, "a")
}

func TestDisplayLatencyTwoDecimals(t *testing.T) {
	e := RunLogEntry{Latency: 1.23456}
	tester.Eq(t, e.DisplayLatency(), "1.23")
	e = RunLogEntry{Latency: 2}
	tester.Eq(t, e.DisplayLatency(), "2.00")
}
