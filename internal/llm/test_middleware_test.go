package llm

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"regbench/internal/tester"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Client) Client {
			return &tagged{next: next, name: name, order: &order}
		}
	}
	inner := NewFakeClient()
	cli := Wrap(inner, tag("outer"), tag("inner"))
	_, err := cli.GenerateText(context.Background(), Request{Model: "m"})
	tester.NoErr(t, err)
	tester.Eq(t, order, []string{"outer", "inner"})
}

type tagged struct {
	next  Client
	name  string
	order *[]string
}

func (c *tagged) Name() string { return c.next.Name() }
func (c *tagged) Close() error { return c.next.Close() }
func (c *tagged) GenerateText(ctx context.Context, req Request) (Result, error) {
	*c.order = append(*c.order, c.name)
	return c.next.GenerateText(ctx, req)
}

func TestWithLoggingPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	inner := NewFakeClient()
	inner.Outputs["m"] = "out"

	cli := Wrap(inner, WithLogging(logger))
	res, err := cli.GenerateText(context.Background(), Request{Model: "m", SystemPrompt: "sys", Input: "in"})
	tester.NoErr(t, err)
	tester.Eq(t, res.Text, "out")
	tester.True(t, strings.Contains(buf.String(), "LLM request (m)"))
}

func TestRateLimitHonorsContext(t *testing.T) {
	inner := NewFakeClient()
	// 0.1 rps, burst 1: the second call would wait ~10s for a token.
	cli := Wrap(inner, RateLimit(0.1, 1))
	_, err := cli.GenerateText(context.Background(), Request{Model: "m"})
	tester.NoErr(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = cli.GenerateText(ctx, Request{Model: "m"})
	tester.True(t, err != nil, "blocked acquire must fail when the context expires")
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	inner := NewFakeClient()
	cli := Wrap(inner, RateLimit(0, 0))
	for i := 0; i < 5; i++ {
		_, err := cli.GenerateText(context.Background(), Request{Model: "m"})
		tester.NoErr(t, err)
	}
}
