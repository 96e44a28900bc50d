// Package agent defines the pipeline stages of the review chain and the
// field-level editing surface exposed to the configuration UI.
package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter bounds accepted at the editing boundary. Values outside these
// ranges are clamped rather than rejected so a half-typed edit never wedges
// the configuration form.
const (
	MinTemperature  = 0.0
	MaxTemperature  = 1.0
	MinOutputTokens = 256
	MaxOutputTokens = 8192
)

// Params are the generation controls forwarded verbatim to the model call.
type Params struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Definition describes one stage of the chain. The ordered slice of
// definitions is the chain order; it never changes mid-run.
type Definition struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Model        string `json:"model"`
	Params       Params `json:"parameters"`
	SystemPrompt string `json:"systemPrompt"`
}

// Clone deep-copies a definition list. The run configuration is always a
// clone of the base list so pre-run edits never leak back into it.
func Clone(defs []Definition) []Definition {
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// SetField applies a single field edit to defs[index]. fieldPath is either a
// top-level field name or a dotted "parameters.<key>" path. Numeric
// parameters are clamped to their accepted ranges.
func SetField(defs []Definition, index int, fieldPath string, value string) error {
	if index < 0 || index >= len(defs) {
		return fmt.Errorf("agent index %d out of range (0..%d)", index, len(defs)-1)
	}
	d := &defs[index]
	switch fieldPath {
	case "name":
		d.Name = value
	case "description":
		d.Description = value
	case "model":
		d.Model = value
	case "systemPrompt":
		d.SystemPrompt = value
	default:
		key, ok := strings.CutPrefix(fieldPath, "parameters.")
		if !ok {
			return fmt.Errorf("unknown agent field %q", fieldPath)
		}
		switch key {
		case "temperature":
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return fmt.Errorf("parameters.temperature: %w", err)
			}
			d.Params.Temperature = clampFloat(f, MinTemperature, MaxTemperature)
		case "maxOutputTokens":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("parameters.maxOutputTokens: %w", err)
			}
			d.Params.MaxOutputTokens = clampInt(n, MinOutputTokens, MaxOutputTokens)
		default:
			return fmt.Errorf("unknown agent parameter %q", key)
		}
	}
	return nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
