package store

import (
	"context"
	"errors"
	"time"

	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

// WordEntry is one tracked vocabulary row as seen by the knowledge-set
// builder. Lemma is empty when upstream did not supply one.
type WordEntry struct {
	Word  string
	Lemma string
}

// VocabularyStore reads the learner's explicitly tracked vocabulary.
type VocabularyStore interface {
	ListKnownWords(ctx context.Context, userID int64, lang language.Language) ([]WordEntry, error)
}

// ScheduleStore owns word_schedules and review_logs.
type ScheduleStore interface {
	GetSchedule(ctx context.Context, userID int64, lang language.Language, word string) (*model.WordSchedule, error)
	UpsertSchedule(ctx context.Context, schedule *model.WordSchedule) error
	// ListDue returns schedules whose due timestamp has passed, soonest
	// first. Mastered words are excluded at the query so they cannot crowd
	// learning words out of the limit window.
	ListDue(ctx context.Context, userID int64, lang language.Language, before time.Time, limit int) ([]model.WordSchedule, error)
	// ListUnscheduled returns tracked words with no schedule row yet, most
	// recently encountered first.
	ListUnscheduled(ctx context.Context, userID int64, lang language.Language, limit int) ([]string, error)
	// ListScheduledWords returns every word with a schedule row, as a
	// knowledge-set source.
	ListScheduledWords(ctx context.Context, userID int64, lang language.Language) ([]WordEntry, error)
	InsertReviewLog(ctx context.Context, entry *model.ReviewLog) error
}

// TextStore owns generated_texts.
type TextStore interface {
	// FindCandidates returns texts for the language/tier whose required known
	// word count falls inside [minCount, maxCount], newest first, capped at
	// limit.
	FindCandidates(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error)
	InsertText(ctx context.Context, text *model.GeneratedText) error
	SetAudioURL(ctx context.Context, textID, audioURL string) error
}
