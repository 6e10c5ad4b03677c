// Package textgen is the comprehensible-input pipeline: tokenization and
// ratio validation, cache matching against previously generated texts, and
// the generation orchestrator that drives the generator collaborator.
package textgen

import (
	"strings"
	"unicode"

	"github.com/lexiread/api/internal/model"
)

// Tokenize splits text into word and punctuation tokens. Words are runs of
// Unicode letters/numbers; apostrophes and hyphens between such runs stay
// inside the word ("don't", "well-known"). Every other non-whitespace rune
// becomes its own punctuation token. Known/New flags are left unset.
func Tokenize(text string) []model.Token {
	runes := []rune(text)
	tokens := make([]model.Token, 0, len(runes)/4)

	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}
	isJoiner := func(r rune) bool {
		return r == '\'' || r == '’' || r == '-'
	}

	for i := 0; i < len(runes); {
		r := runes[i]

		if unicode.IsSpace(r) {
			i++
			continue
		}

		if isWordRune(r) {
			start := i
			i++
			for i < len(runes) {
				if isWordRune(runes[i]) {
					i++
					continue
				}
				if isJoiner(runes[i]) && i+1 < len(runes) && isWordRune(runes[i+1]) {
					i += 2
					continue
				}
				break
			}
			tokens = append(tokens, model.Token{
				Text:     string(runes[start:i]),
				Position: len(tokens),
			})
			continue
		}

		tokens = append(tokens, model.Token{
			Text:     string(r),
			Position: len(tokens),
			Punct:    true,
			Known:    true,
		})
		i++
	}

	return tokens
}

// Label recomputes the Known/New flags of tokens against a learner's known
// set. Punctuation is always known. Returns the same slice for convenience.
func Label(tokens []model.Token, knownSet map[string]struct{}) []model.Token {
	for i := range tokens {
		if tokens[i].Punct {
			tokens[i].Known = true
			tokens[i].New = false
			continue
		}
		_, known := knownSet[strings.ToLower(tokens[i].Text)]
		tokens[i].Known = known
		tokens[i].New = !known
	}
	return tokens
}

// ValidateRatio reports whether text stays within the new-word budget against
// knownSet. Each distinct unknown word costs the budget once, regardless of
// how often it repeats.
func ValidateRatio(text string, knownSet map[string]struct{}, budget int) (valid bool, unknown map[string]struct{}, unknownCount int) {
	unknown = make(map[string]struct{})
	for _, token := range Tokenize(text) {
		if token.Punct {
			continue
		}
		form := strings.ToLower(token.Text)
		if _, ok := knownSet[form]; !ok {
			unknown[form] = struct{}{}
		}
	}
	return len(unknown) <= budget, unknown, len(unknown)
}

// CountWords returns the number of non-punctuation tokens in text.
func CountWords(text string) int {
	count := 0
	for _, token := range Tokenize(text) {
		if !token.Punct {
			count++
		}
	}
	return count
}
