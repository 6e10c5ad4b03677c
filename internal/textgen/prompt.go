package textgen

import (
	"fmt"
	"strings"

	"github.com/lexiread/api/internal/language"
)

// knownSampleSize bounds how many known words are embedded in a prompt as a
// style hint. The full list can run to thousands of words.
const knownSampleSize = 40

// attempt is the explicit state of the retry-with-mutated-prompt machine:
// which validation attempt this is, the new-word allowance stated in the
// prompt, the sampling temperature, and why the previous attempt failed.
type attempt struct {
	index        int
	allowance    int
	temperature  float64
	lastUnknowns int
}

func firstAttempt(budget int) attempt {
	return attempt{
		index:       1,
		allowance:   budget,
		temperature: 0.9,
	}
}

// next tightens the prompt after a ratio violation: roughly half the stated
// allowance and a lower temperature.
func (a attempt) next(unknowns int) attempt {
	allowance := a.allowance / 2
	if allowance < 1 {
		allowance = 1
	}
	return attempt{
		index:        a.index + 1,
		allowance:    allowance,
		temperature:  0.6,
		lastUnknowns: unknowns,
	}
}

func buildSystemInstruction(lang language.Language) string {
	return fmt.Sprintf(
		"You are a writing assistant producing reading material for %s learners. "+
			"Respond with plain prose only: no headings, no markdown, no lists, no commentary.",
		lang.Name())
}

func buildPrompt(lang language.Language, tier, topic, label string, targetWords int, knownSample, priorityWords []string, a attempt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a %s in %s of about %d words for a %s-level learner.",
		label, lang.Name(), targetWords, tier)
	if topic != "" {
		fmt.Fprintf(&b, " The topic is: %s.", topic)
	}

	if len(knownSample) > 0 {
		fmt.Fprintf(&b, "\nThe learner already knows words like: %s.",
			strings.Join(knownSample, ", "))
		b.WriteString(" Build the text mainly from vocabulary of this kind.")
	}

	if len(priorityWords) > 0 {
		fmt.Fprintf(&b, "\nWork these review words into the text naturally: %s.",
			strings.Join(priorityWords, ", "))
	}

	fmt.Fprintf(&b, "\nIntroduce at most %d words the learner has not seen before.", a.allowance)

	if a.index > 1 {
		fmt.Fprintf(&b,
			"\nYour previous draft used %d unfamiliar words, which is too many. "+
				"Stay strictly within the limit this time, even if the text becomes simpler.",
			a.lastUnknowns)
	}

	return b.String()
}

func buildTitlePrompt(lang language.Language, content string) string {
	return fmt.Sprintf(
		"Give a short title (at most six words, no quotes) in %s for this text:\n\n%s",
		lang.Name(), content)
}
