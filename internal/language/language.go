package language

import (
	"fmt"
	"strings"
)

// Language is an enumerated language code. Handlers must go through Parse so
// an unsupported code fails the request instead of silently defaulting.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
)

var byCode = map[string]Language{
	"en": English, "english": English,
	"es": Spanish, "spanish": Spanish,
	"fr": French, "french": French,
	"de": German, "german": German,
}

var names = map[Language]string{
	English: "English",
	Spanish: "Spanish",
	French:  "French",
	German:  "German",
}

// Voice names for the text-to-speech collaborator (Standard tier voices).
var voices = map[Language]struct {
	LanguageCode string
	Name         string
}{
	English: {"en-US", "en-US-Standard-F"},
	Spanish: {"es-ES", "es-ES-Standard-A"},
	French:  {"fr-FR", "fr-FR-Standard-A"},
	German:  {"de-DE", "de-DE-Standard-A"},
}

// Parse maps a request-supplied code or name to a Language.
func Parse(code string) (Language, error) {
	lang, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return "", fmt.Errorf("unsupported language: %q", code)
	}
	return lang, nil
}

func All() []Language {
	return []Language{English, Spanish, French, German}
}

func (l Language) Code() string {
	return string(l)
}

func (l Language) Name() string {
	return names[l]
}

// Voice returns the TTS language code and voice name for this language.
func (l Language) Voice() (languageCode, name string) {
	v := voices[l]
	return v.LanguageCode, v.Name
}

// FunctionWords returns the static function/grammar word set for this
// language. Callers must not mutate the returned map.
func (l Language) FunctionWords() map[string]struct{} {
	return functionWords[l]
}

// IsFunctionWord reports whether the lowercase form is a function word.
func (l Language) IsFunctionWord(word string) bool {
	_, ok := functionWords[l][word]
	return ok
}
