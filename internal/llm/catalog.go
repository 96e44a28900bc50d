package llm

import (
	"context"
	"log"
	"os"
	"sync"
)

// Resolver hands out a client for a model identifier. The chain executor
// resolves per invocation so every agent can select its model independently.
type Resolver interface {
	ClientFor(ctx context.Context, model string) (Client, error)
}

// Factory builds the client for one registered model.
type Factory func(ctx context.Context) (Client, error)

// RateLimitConfig caps request rate for one model.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type registration struct {
	factory Factory
	limit   *RateLimitConfig
}

// Catalog maps model identifiers to lazily-built, cached clients, with
// logging and per-model rate limiting wrapped around each.
type Catalog struct {
	mu      sync.Mutex
	reg     map[string]registration
	clients map[string]Client
	logger  *log.Logger
}

func NewCatalog(logger *log.Logger) *Catalog {
	return &Catalog{
		reg:     make(map[string]registration),
		clients: make(map[string]Client),
		logger:  logger,
	}
}

// Register binds a model identifier to a factory. A later registration for
// the same identifier replaces the earlier one.
func (c *Catalog) Register(model string, limit *RateLimitConfig, f Factory) {
	c.mu.Lock()
	c.reg[model] = registration{factory: f, limit: limit}
	c.mu.Unlock()
}

// ClientFor returns the cached client for a model, building it on first use.
func (c *Catalog) ClientFor(ctx context.Context, model string) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cli, ok := c.clients[model]; ok {
		return cli, nil
	}
	r, ok := c.reg[model]
	if !ok {
		return nil, ErrUnknownModel
	}
	inner, err := r.factory(ctx)
	if err != nil {
		return nil, err
	}
	mws := []Middleware{WithLogging(c.logger)}
	if r.limit != nil {
		mws = append(mws, RateLimit(r.limit.RPS, r.limit.Burst))
	}
	cli := Wrap(inner, mws...)
	c.clients[model] = cli
	return cli, nil
}

// Close closes every built client.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var first error
	for _, cli := range c.clients {
		if err := cli.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.clients = make(map[string]Client)
	return first
}

// RegisterGeminiModels registers the Gemini models the default chain uses,
// with free-tier rate limits.
func RegisterGeminiModels(c *Catalog) {
	freeLimits := &RateLimitConfig{RPS: 0.25, Burst: 1}
	for _, model := range []string{"gemini-2.5-flash", "gemini-2.5-pro"} {
		m := model
		c.Register(m, freeLimits, func(ctx context.Context) (Client, error) {
			return NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), m)
		})
	}
}

// RegisterGroqModels registers the Groq-served open models.
func RegisterGroqModels(c *Catalog) {
	limits := &RateLimitConfig{RPS: 0.5, Burst: 1}
	for _, model := range []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"} {
		m := model
		c.Register(m, limits, func(ctx context.Context) (Client, error) {
			return NewGroqClient(os.Getenv("GROQ_API_KEY"), m)
		})
	}
}

// RegisterFakeModels points every known model identifier at one shared fake
// client for offline runs (LLM_FAKE=1).
func RegisterFakeModels(c *Catalog, fake *FakeClient) {
	for _, model := range []string{
		"gemini-2.5-flash", "gemini-2.5-pro",
		"llama-3.3-70b-versatile", "llama-3.1-8b-instant",
	} {
		c.Register(model, nil, func(ctx context.Context) (Client, error) {
			return fake, nil
		})
	}
}
