package workspace

// Level is one row of the completion-quality table shown on the dashboard.
type Level struct {
	Score    int    `json:"score"`
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

var levels = [4]Level{
	{Score: 0, Label: "Getting Started", Severity: "info"},
	{Score: 1, Label: "Warming Up", Severity: "low"},
	{Score: 2, Label: "In the Zone", Severity: "medium"},
	{Score: 3, Label: "Wow! Pro Level", Severity: "high"},
}

// Completion derives the 0-3 quality score from the metrics. Three
// independent thresholds each contribute one point; the checks are additive,
// not short-circuiting, so the result is reproducible from the same inputs.
func Completion(m Metrics) Level {
	score := 0
	if m.OCRPages > 0 || m.Chars > 1000 {
		score++
	}
	if m.AgentsRun >= 2 {
		score++
	}
	if m.Chars > 5000 && m.AgentsRun >= 4 {
		score++
	}
	return levels[score]
}
