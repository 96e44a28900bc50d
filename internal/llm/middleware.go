package llm

import (
	"context"
	"log"
)

// Middleware decorates a Client to inject cross-cutting concerns. There is
// deliberately no retry layer: an invocation failure is terminal for the
// current chain run.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// WithLogging logs request size and errors. Pass nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateText(ctx context.Context, req Request) (Result, error) {
	l.log.Printf("LLM request (%s): %d bytes", req.Model, len(req.SystemPrompt)+len(req.Input))
	res, err := l.next.GenerateText(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", req.Model, err)
	}
	return res, err
}

// RateLimit limits request rate with a token bucket. If rps <= 0 the
// limiter is disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		return &rateLimited{next: next, rl: newRPSLimiter(rps, burst)}
	}
}

type rateLimited struct {
	next Client
	rl   *rpsLimiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.next.Close()
}

func (c *rateLimited) GenerateText(ctx context.Context, req Request) (Result, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return Result{}, err
	}
	return c.next.GenerateText(ctx, req)
}
