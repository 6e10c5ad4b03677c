package textgen

import (
	"context"
	"log"

	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"github.com/lexiread/api/internal/store"
)

// CandidateLimit bounds how many stored texts one lookup may scan. A miss
// inside the window means generation, not a full-table scan.
const CandidateLimit = 30

// Matcher searches previously generated texts for one that still satisfies
// the requesting learner's ratio constraint, so learners at similar
// vocabulary sizes share texts instead of regenerating them.
type Matcher struct {
	texts store.TextStore
}

func NewMatcher(texts store.TextStore) *Matcher {
	return &Matcher{texts: texts}
}

// FindReusable returns the newest stored text for the language/tier that the
// requesting learner's known set accepts, or nil on a cache miss.
//
// The ±50% window on required known-word count is a cheap pre-filter only;
// every candidate is re-validated against the requester's own vocabulary,
// and token flags are relabeled per requester before the text is returned.
func (m *Matcher) FindReusable(ctx context.Context, lang language.Language, tier string, knownSet map[string]struct{}, newWordBudget, reportableCount int) (*model.GeneratedText, error) {
	minCount := reportableCount / 2
	maxCount := reportableCount + reportableCount/2

	candidates, err := m.texts.FindCandidates(ctx, lang, tier, minCount, maxCount, CandidateLimit)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidate := &candidates[i]

		valid, _, unknownCount := ValidateRatio(candidate.Content, knownSet, newWordBudget)
		if !valid {
			continue
		}

		tokens := Label(Tokenize(candidate.Content), knownSet)
		if err := candidate.EncodeTokens(tokens); err != nil {
			log.Printf("[Matcher] Failed to encode tokens for %s: %v", candidate.ID, err)
			continue
		}

		log.Printf("[Matcher] Reusing text %s (%d unknown, budget %d)",
			candidate.ID, unknownCount, newWordBudget)
		return candidate, nil
	}

	return nil, nil
}
