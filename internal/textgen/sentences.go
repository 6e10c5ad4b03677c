package textgen

import (
	"regexp"
	"strings"
)

// SentenceSplitter segments text into whole sentences. Pluggable so the
// boundary heuristics (abbreviations, decimal numbers) can be swapped
// without touching the orchestrator's truncation logic.
type SentenceSplitter interface {
	Split(text string) []string
}

// RegexSplitter breaks on terminal punctuation followed by whitespace or end
// of text, keeping the punctuation and any trailing quotes with its sentence.
type RegexSplitter struct{}

var sentencePattern = regexp.MustCompile(`[^.!?…]*[.!?…]+["'”’)]*\s*|[^.!?…]+$`)

func (RegexSplitter) Split(text string) []string {
	matches := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

var (
	markdownHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	markdownEmphasis = regexp.MustCompile(`(\*{1,3}|_{1,3})(\S(?:.*?\S)?)(\*{1,3}|_{1,3})`)
	markdownFence    = regexp.MustCompile("```[a-z]*")
	blankRuns        = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup removes heading/bold/italic artifacts the generator sometimes
// emits, leaving plain prose for validation.
func StripMarkup(text string) string {
	text = markdownFence.ReplaceAllString(text, "")
	text = markdownHeading.ReplaceAllString(text, "")
	text = markdownEmphasis.ReplaceAllString(text, "$2")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
