package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"regbench/internal/tester"
	"regbench/internal/workspace"
)

func sampleState(textLen int) workspace.State {
	return workspace.State{
		RawText: strings.Repeat("a", textLen),
		RunLog: []workspace.RunLogEntry{
			{AgentName: "extraction", Model: "gemini-2.5-flash", Output: "first", Latency: 1.2},
			{AgentName: "checklist", Model: "gemini-2.5-pro", Output: "second", Latency: 0.8},
		},
		Metrics: workspace.Metrics{Chars: textLen, AgentsRun: 2, Latency: 2.0},
	}
}

func TestBuildExcerptTruncation(t *testing.T) {
	p := Build(sampleState(1500))
	tester.Eq(t, len(p.GuidanceExcerpt), 1000, "excerpt capped at 1000 chars")

	p = Build(sampleState(300))
	tester.Eq(t, len(p.GuidanceExcerpt), 300, "short text exported whole")

	p = Build(workspace.State{})
	tester.Eq(t, p.GuidanceExcerpt, "")
}

func TestBuildExcerptKeepsRuneBoundary(t *testing.T) {
	// 999 ASCII bytes, then 3-byte CJK runes: byte 1000 falls mid-rune.
	st := workspace.State{RawText: strings.Repeat("a", 999) + strings.Repeat("法規指引", 100)}
	p := Build(st)
	tester.True(t, utf8.ValidString(p.GuidanceExcerpt), "excerpt must stay valid UTF-8")
	tester.Eq(t, len(p.GuidanceExcerpt), 999, "cut backed up to the last whole rune")
	tester.True(t, strings.HasPrefix(st.RawText, p.GuidanceExcerpt))

	// A rune ending exactly at the cap is kept whole.
	st = workspace.State{RawText: strings.Repeat("a", 997) + strings.Repeat("規", 10)}
	p = Build(st)
	tester.True(t, utf8.ValidString(p.GuidanceExcerpt))
	tester.Eq(t, len(p.GuidanceExcerpt), 1000)
	tester.True(t, strings.HasPrefix(st.RawText, p.GuidanceExcerpt))
}

func TestBuildChainMapping(t *testing.T) {
	p := Build(sampleState(10))
	tester.Eq(t, len(p.Chain), 2)
	tester.Eq(t, p.Chain[0], Step{Agent: "extraction", Model: "gemini-2.5-flash", Output: "first"})
	tester.Eq(t, p.Metrics.AgentsRun, 2)
}

func TestEncodeKeysAndNoHTMLEscape(t *testing.T) {
	st := sampleState(10)
	st.RunLog[0].Output = "a < b && c > d"
	data, err := Encode(Build(st))
	tester.NoErr(t, err)

	s := string(data)
	tester.True(t, strings.Contains(s, `"guidance_excerpt"`))
	tester.True(t, strings.Contains(s, `"chain"`))
	tester.True(t, strings.Contains(s, `"metrics"`))
	tester.True(t, strings.Contains(s, "a < b && c > d"), "model output survives escaping")

	var round Payload
	tester.NoErr(t, json.Unmarshal(data, &round))
	tester.Eq(t, round.Chain[0].Output, "a < b && c > d")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	tester.NoErr(t, s.Put(ctx, "a.json", []byte("one")))
	tester.NoErr(t, s.Put(ctx, "b.json", []byte("two")))

	data, err := s.Get(ctx, "a.json")
	tester.NoErr(t, err)
	tester.Eq(t, string(data), "one")

	names, err := s.List(ctx)
	tester.NoErr(t, err)
	tester.Eq(t, names, []string{"a.json", "b.json"})

	_, err = s.Get(ctx, "missing.json")
	tester.ErrContains(t, err, "not found")
}

func TestStampedNameKeepsFileName(t *testing.T) {
	name := StampedName(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC))
	tester.Eq(t, name, "20260301T123000-"+FileName)
}
