package chain

import (
	"context"
	"fmt"
	"time"

	"regbench/internal/agent"
	"regbench/internal/llm"
	"regbench/internal/workspace"
)

// Executor drives one chain run at a time: agents in list order, each
// consuming the previous agent's output verbatim. No retry, no timeout, no
// mid-run cancellation primitive.
type Executor struct {
	store  *workspace.Store
	models llm.Resolver
	broker *Broker
}

func NewExecutor(store *workspace.Store, models llm.Resolver, broker *Broker) *Executor {
	return &Executor{store: store, models: models, broker: broker}
}

// Start begins a run and returns once the Idle -> Running transition is
// done; the chain itself proceeds on its own goroutine. An overlapping start
// fails fast with workspace.ErrBusy before any state is touched.
func (e *Executor) Start(ctx context.Context, runID, initialInput string) error {
	gen, defs, err := e.store.BeginRun()
	if err != nil {
		return err
	}
	go e.loop(ctx, runID, gen, defs, initialInput)
	return nil
}

// Run executes the full chain synchronously and returns the run-level error,
// if any. runID names the event stream for this run.
func (e *Executor) Run(ctx context.Context, runID, initialInput string) error {
	gen, defs, err := e.store.BeginRun()
	if err != nil {
		return err
	}
	return e.loop(ctx, runID, gen, defs, initialInput)
}

func (e *Executor) loop(ctx context.Context, runID string, gen uint64, defs []agent.Definition, initialInput string) error {
	input := initialInput
	for i, def := range defs {
		e.broker.Emit(runID, Event{
			Type:    EventStatus,
			RunID:   runID,
			Step:    i + 1,
			Agent:   def.Name,
			Message: fmt.Sprintf("Running agent %d/%d: %s", i+1, len(defs), def.Name),
		})

		client, err := e.models.ClientFor(ctx, def.Model)
		if err != nil {
			return e.fail(runID, gen, fmt.Errorf("agent %q: %w", def.Name, err))
		}

		start := time.Now()
		res, err := client.GenerateText(ctx, llm.Request{
			Model:           def.Model,
			SystemPrompt:    def.SystemPrompt,
			Temperature:     def.Params.Temperature,
			MaxOutputTokens: def.Params.MaxOutputTokens,
			Input:           input,
		})
		latency := time.Since(start).Seconds()
		if err != nil {
			return e.fail(runID, gen, fmt.Errorf("agent %q (%s) failed: %w", def.Name, def.Model, err))
		}

		entry := workspace.RunLogEntry{
			AgentName: def.Name,
			Model:     def.Model,
			Output:    res.Text,
			Latency:   latency,
		}
		if !e.store.AppendEntry(gen, entry) {
			// A newer run took over; stop without touching its state.
			return nil
		}
		e.broker.Emit(runID, Event{
			Type:    EventStep,
			RunID:   runID,
			Step:    i + 1,
			Agent:   def.Name,
			Model:   def.Model,
			Output:  res.Text,
			Latency: latency,
		})

		// The next agent sees this output verbatim, empty included.
		input = res.Text
	}

	if e.store.FinishRun(gen, nil) {
		e.broker.Emit(runID, Event{Type: EventCompleted, RunID: runID, Message: "COMPLETE"})
	}
	e.broker.ScheduleCleanup(runID)
	return nil
}

func (e *Executor) fail(runID string, gen uint64, err error) error {
	if e.store.FinishRun(gen, err) {
		e.broker.Emit(runID, Event{Type: EventFailed, RunID: runID, Message: err.Error()})
	}
	e.broker.ScheduleCleanup(runID)
	return err
}
