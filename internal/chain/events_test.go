package chain

import (
	"testing"

	"regbench/internal/tester"
)

func TestBrokerAllocateAndGet(t *testing.T) {
	b := NewBroker()

	ch := b.Allocate("run-000001", 4)
	got, ok := b.Get("run-000001")
	tester.True(t, ok)
	tester.True(t, got == ch)

	_, ok = b.Get("run-999999")
	tester.False(t, ok)
}

func TestBrokerGetTrimsRunID(t *testing.T) {
	b := NewBroker()
	b.Allocate(" run-000002 ", 1)

	_, ok := b.Get("run-000002")
	tester.True(t, ok)
}

func TestBrokerEmitDropsWhenFull(t *testing.T) {
	b := NewBroker()
	ch := b.Allocate("run-000003", 1)

	b.Emit("run-000003", Event{Type: EventStatus, Message: "first"})
	// Channel is full now; this must not block.
	b.Emit("run-000003", Event{Type: EventStatus, Message: "second"})

	ev := <-ch
	tester.Eq(t, ev.Message, "first")
	select {
	case extra := <-ch:
		t.Fatalf("unexpected buffered event: %+v", extra)
	default:
	}
}

func TestBrokerEmitUnknownRunIsNoop(t *testing.T) {
	b := NewBroker()
	b.Emit("run-404", Event{Type: EventStep})
}

func TestBrokerReleaseRemovesChannel(t *testing.T) {
	b := NewBroker()
	b.Allocate("run-000005", 1)
	b.Release("run-000005")

	_, ok := b.Get("run-000005")
	tester.False(t, ok)
}

func TestBrokerAllocateClampsBuffer(t *testing.T) {
	b := NewBroker()
	ch := b.Allocate("run-000004", 0)
	tester.Eq(t, cap(ch), 1)
}
