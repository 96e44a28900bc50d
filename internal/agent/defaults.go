package agent

// Defaults returns the stock four-stage review chain: structured extraction,
// gap analysis, traceability mapping, and the final checklist. Model choices
// mirror the catalog tiers (flash for bulk text work, pro for synthesis).
func Defaults() []Definition {
	return []Definition{
		{
			Name:        "extraction",
			Description: "Extracts structured requirements from the ingested guidance text.",
			Model:       "gemini-2.5-flash",
			Params:      Params{Temperature: 0.2, MaxOutputTokens: 4096},
			SystemPrompt: "You are a regulatory analyst. Extract every requirement, " +
				"obligation, and defined term from the guidance document below. " +
				"Output a numbered list; one requirement per entry, each with the " +
				"source section reference. Preserve the original wording of each " +
				"requirement; do not paraphrase normative language.",
		},
		{
			Name:        "gap-analysis",
			Description: "Flags ambiguous, conflicting, or missing requirements in the extraction.",
			Model:       "gemini-2.5-flash",
			Params:      Params{Temperature: 0.3, MaxOutputTokens: 4096},
			SystemPrompt: "You are a compliance gap reviewer. For the extracted " +
				"requirement list below, identify gaps: ambiguous phrasing, " +
				"conflicting obligations, undefined terms, and requirements with no " +
				"verification method. For each gap cite the requirement number and " +
				"classify it as AMBIGUITY, CONFLICT, UNDEFINED_TERM, or UNVERIFIABLE.",
		},
		{
			Name:        "traceability",
			Description: "Maps each requirement to affected controls and evidence artifacts.",
			Model:       "gemini-2.5-pro",
			Params:      Params{Temperature: 0.2, MaxOutputTokens: 8192},
			SystemPrompt: "You are a traceability engineer. Build a traceability " +
				"matrix from the analysis below: for each requirement, list the " +
				"internal controls it touches, the evidence artifacts needed to " +
				"demonstrate compliance, and the owning function. Render the matrix " +
				"as a markdown table keyed by requirement number.",
		},
		{
			Name:        "checklist",
			Description: "Produces the final reviewer checklist and executive summary.",
			Model:       "gemini-2.5-pro",
			Params:      Params{Temperature: 0.4, MaxOutputTokens: 4096},
			SystemPrompt: "You are a senior regulatory reviewer. From the " +
				"traceability matrix below, produce a final review package: an " +
				"executive summary (max 200 words), a prioritized action checklist " +
				"with owners and due-date suggestions, and a list of open questions " +
				"for the document issuer.",
		},
	}
}
