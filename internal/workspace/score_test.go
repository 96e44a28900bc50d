package workspace

import (
	"testing"

	"regbench/internal/tester"
)

func TestCompletionScoreTable(t *testing.T) {
	cases := []struct {
		name  string
		m     Metrics
		score int
		label string
	}{
		{"empty session", Metrics{Chars: 500}, 0, "Getting Started"},
		{"big doc full chain", Metrics{Chars: 6000, AgentsRun: 4}, 3, "Wow! Pro Level"},
		{"medium doc two agents", Metrics{Chars: 1200, AgentsRun: 2}, 2, "In the Zone"},
		{"ocr only", Metrics{OCRPages: 3, Chars: 800}, 1, "Warming Up"},
		{"agents without document", Metrics{Chars: 100, AgentsRun: 2}, 1, "Warming Up"},
		{"big doc short chain", Metrics{Chars: 9000, AgentsRun: 3}, 2, "In the Zone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl := Completion(tc.m)
			tester.Eq(t, lvl.Score, tc.score)
			tester.Eq(t, lvl.Label, tc.label)
		})
	}
}

func TestCompletionIsDeterministic(t *testing.T) {
	m := Metrics{OCRPages: 2, Chars: 7000, AgentsRun: 4}
	first := Completion(m)
	for i := 0; i < 10; i++ {
		tester.Eq(t, Completion(m), first)
	}
}
