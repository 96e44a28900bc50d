package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FakeClient returns deterministic outputs for offline mode and tests.
// FailOn/Delay make specific invocations scriptable.
type FakeClient struct {
	mu sync.Mutex

	// Outputs maps model identifier -> canned output. When no entry exists
	// the client echoes a deterministic digest of the request.
	Outputs map[string]string
	// FailOn maps model identifier -> error returned for that model.
	FailOn map[string]error
	// Delay is slept per call to simulate invocation latency.
	Delay time.Duration

	calls []Request
}

func NewFakeClient() *FakeClient {
	return &FakeClient{Outputs: map[string]string{}, FailOn: map[string]error{}}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls returns a copy of every request seen, in order.
func (f *FakeClient) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) GenerateText(ctx context.Context, req Request) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	failErr := f.FailOn[req.Model]
	out, ok := f.Outputs[req.Model]
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	if failErr != nil {
		return Result{}, failErr
	}
	if !ok {
		out = fmt.Sprintf("[%s] %d chars in", req.Model, len(req.Input))
	}
	return Result{Text: out}, nil
}
