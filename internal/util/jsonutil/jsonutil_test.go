package jsonutil

import (
	"strings"
	"testing"
)

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"k": "<a>&</a>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(out); got != `{"k":"<a>&</a>"}` {
		t.Fatalf("got=%s", got)
	}
	if strings.HasSuffix(string(out), "\n") {
		t.Fatalf("trailing newline not trimmed")
	}
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	out, err := MarshalNoEscapeIndent(map[string]string{"k": "<v>"}, "", "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"k\": \"<v>\"\n}"
	if string(out) != want {
		t.Fatalf("got=%q want=%q", string(out), want)
	}
}
