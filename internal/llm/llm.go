// Package llm wraps the generative-model backends behind one small client
// interface. Clients only perform the API call itself; cross-cutting
// concerns (logging, rate limiting) are layered on via Middleware.
package llm

import (
	"context"
	"errors"
)

// Request is a single-turn invocation: the input text is the sole user
// message, with no prior turns replayed.
type Request struct {
	Model           string
	SystemPrompt    string
	Temperature     float64
	MaxOutputTokens int
	Input           string
}

// Result carries the generated text. Text is "" (never absent) when the
// backend returns no candidate content.
type Result struct {
	Text string
}

// Client is one generative backend bound to one model identifier.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, req Request) (Result, error)
	Close() error
}

// ErrUnknownModel is returned by the catalog for an identifier no factory
// was registered for.
var ErrUnknownModel = errors.New("llm: unknown model identifier")

// PermanentError indicates an error that will not resolve by calling again
// (bad request, rejected parameters). The chain treats every invocation
// error as terminal; the distinction is kept for logging.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error { return &PermanentError{Err: err} }
