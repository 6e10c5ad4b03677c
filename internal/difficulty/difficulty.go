// Package difficulty maps a learner's reportable vocabulary size to a target
// text length and an allowed new-word budget. The budget is the central
// constraint of the pipeline: an accepted text may never introduce more
// distinct unknown words than the learner's current band allows.
package difficulty

// Spec is the derived difficulty for one request. Never persisted.
type Spec struct {
	Label         string `json:"label"`
	TargetWords   int    `json:"targetWords"`
	NewWordBudget int    `json:"newWordBudget"`
}

type band struct {
	minKnown int
	spec     Spec
}

// Bands are ordered by minKnown descending so Pick can take the first match.
var bands = []band{
	{500, Spec{Label: "story", TargetWords: 380, NewWordBudget: 20}},
	{200, Spec{Label: "short story", TargetWords: 280, NewWordBudget: 15}},
	{100, Spec{Label: "paragraph", TargetWords: 190, NewWordBudget: 10}},
	{50, Spec{Label: "short paragraph", TargetWords: 95, NewWordBudget: 5}},
	{20, Spec{Label: "short text", TargetWords: 48, NewWordBudget: 3}},
	{0, Spec{Label: "very short text", TargetWords: 18, NewWordBudget: 1}},
}

// Pick returns the difficulty spec for a reportable known-word count.
// Deterministic and total; negative counts clamp to the lowest band.
func Pick(reportableCount int) Spec {
	for _, b := range bands {
		if reportableCount >= b.minKnown {
			return b.spec
		}
	}
	return bands[len(bands)-1].spec
}
