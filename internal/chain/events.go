// Package chain runs the configured agent sequence against the ingested
// document, one invocation at a time, streaming step events to observers.
package chain

import (
	"strings"
	"sync"
	"time"
)

// Event types pushed to run observers.
const (
	EventStep      = "step"
	EventStatus    = "status"
	EventCompleted = "completed"
	EventFailed    = "failed"
)

// Event is one observable moment of a run. Step events are emitted the
// instant an invocation completes, before the next agent is invoked.
type Event struct {
	Type    string  `json:"type"`
	RunID   string  `json:"runId,omitempty"`
	Step    int     `json:"step,omitempty"`
	Agent   string  `json:"agent,omitempty"`
	Model   string  `json:"model,omitempty"`
	Output  string  `json:"output,omitempty"`
	Latency float64 `json:"latency,omitempty"`
	Message string  `json:"message,omitempty"`
}

const completedRunRetention = 30 * time.Second

// Broker manages per-run event channels for websocket consumers.
type Broker struct {
	mu     sync.RWMutex
	events map[string]chan Event
}

func NewBroker() *Broker {
	return &Broker{events: make(map[string]chan Event)}
}

// Allocate creates and registers a new event channel for a run.
func (b *Broker) Allocate(runID string, size int) chan Event {
	if size <= 0 {
		size = 1
	}
	ch := make(chan Event, size)
	b.mu.Lock()
	b.events[strings.TrimSpace(runID)] = ch
	b.mu.Unlock()
	return ch
}

// Get returns the event channel for a run.
func (b *Broker) Get(runID string) (chan Event, bool) {
	b.mu.RLock()
	ch, ok := b.events[strings.TrimSpace(runID)]
	b.mu.RUnlock()
	return ch, ok
}

// Emit delivers an event without blocking the executor; when the channel is
// full (no consumer keeping up) the event is dropped.
func (b *Broker) Emit(runID string, ev Event) {
	ch, ok := b.Get(runID)
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}

// Release removes a run's event channel immediately. Used when a run never
// started, so nothing was ever emitted on the channel.
func (b *Broker) Release(runID string) {
	b.mu.Lock()
	delete(b.events, strings.TrimSpace(runID))
	b.mu.Unlock()
}

// ScheduleCleanup removes a run's event channel after a retention period.
func (b *Broker) ScheduleCleanup(runID string) {
	time.AfterFunc(completedRunRetention, func() {
		b.mu.Lock()
		delete(b.events, strings.TrimSpace(runID))
		b.mu.Unlock()
	})
}
