// Package export renders the run results as the downloadable
// agent_chain_results.json artifact and pushes it to artifact stores.
package export

import (
	"unicode/utf8"

	"regbench/internal/util/jsonutil"
	"regbench/internal/workspace"
)

// FileName is the download name offered to the reviewer.
const FileName = "agent_chain_results.json"

// excerptLen caps the guidance excerpt included in the artifact.
const excerptLen = 1000

// Step is one chain entry in the artifact.
type Step struct {
	Agent  string `json:"agent"`
	Model  string `json:"model"`
	Output string `json:"output"`
}

// Payload is the exported JSON document.
type Payload struct {
	GuidanceExcerpt string            `json:"guidance_excerpt"`
	Chain           []Step            `json:"chain"`
	Metrics         workspace.Metrics `json:"metrics"`
}

// Build assembles the artifact from a state snapshot. The excerpt is the
// first up-to-1000 bytes of the raw text, cut back to a rune boundary so
// multibyte text never exports as invalid UTF-8.
func Build(st workspace.State) Payload {
	excerpt := st.RawText
	if len(excerpt) > excerptLen {
		cut := excerptLen
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}
	steps := make([]Step, 0, len(st.RunLog))
	for _, e := range st.RunLog {
		steps = append(steps, Step{Agent: e.AgentName, Model: e.Model, Output: e.Output})
	}
	return Payload{
		GuidanceExcerpt: excerpt,
		Chain:           steps,
		Metrics:         st.Metrics,
	}
}

// Encode serializes the payload without HTML escaping so prompt text and
// model output survive round-trips verbatim.
func Encode(p Payload) ([]byte, error) {
	return jsonutil.MarshalNoEscapeIndent(p, "", "  ")
}
