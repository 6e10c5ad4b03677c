// Package vocab builds the learner's known-word set from the tracked
// vocabulary sources plus the static function-word baseline.
package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/lexiread/api/internal/cache"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/store"
)

// Source is one read-only vocabulary provider. The builder unions all of
// them; a single failing source degrades to a partial union, not an error.
type Source interface {
	Name() string
	List(ctx context.Context, userID int64, lang language.Language) ([]store.WordEntry, error)
}

// KnownSet is one learner's knowledge set for a language.
type KnownSet struct {
	// Set contains every known lowercase form, function words included.
	Set map[string]struct{}
	// List is every tracked form, including any function words the learner
	// tracked explicitly. Used for prompt sampling; the static baseline is
	// never sampled.
	List []string
	// ReportableCount excludes function words; it drives difficulty banding.
	ReportableCount int
}

// Builder assembles knowledge sets, with an optional redis-backed cache so
// repeated requests in a session skip the vocabulary-store reads.
type Builder struct {
	sources []Source
	cache   *cache.RedisCache // nil disables caching
}

func NewBuilder(cache *cache.RedisCache, sources ...Source) *Builder {
	return &Builder{sources: sources, cache: cache}
}

// Build returns the learner's knowledge set for the language.
func (b *Builder) Build(ctx context.Context, userID int64, lang language.Language) (*KnownSet, error) {
	key := cache.KnownSetKey(userID, lang.Code())
	if b.cache != nil {
		if raw, err := b.cache.Get(ctx, key); err == nil {
			var cached []string
			if err := json.Unmarshal(raw, &cached); err == nil {
				return assemble(cached, lang), nil
			}
		}
	}

	merged := make(map[string]struct{})
	sourcesFailed := 0
	for _, source := range b.sources {
		entries, err := source.List(ctx, userID, lang)
		if err != nil {
			log.Printf("[Vocab] Source %s failed for user %d: %v", source.Name(), userID, err)
			sourcesFailed++
			continue
		}
		for _, entry := range entries {
			form := entry.Lemma
			if form == "" {
				form = entry.Word
			}
			form = strings.ToLower(strings.TrimSpace(form))
			if form != "" {
				merged[form] = struct{}{}
			}
		}
	}
	if sourcesFailed == len(b.sources) && len(b.sources) > 0 {
		return nil, fmt.Errorf("all vocabulary sources failed for user %d", userID)
	}

	list := make([]string, 0, len(merged))
	for form := range merged {
		list = append(list, form)
	}

	if b.cache != nil {
		if raw, err := json.Marshal(list); err == nil {
			if err := b.cache.Set(ctx, key, raw, cache.KnownSetTTL); err != nil {
				log.Printf("[Vocab] Failed to cache knowledge set: %v", err)
			}
		}
	}

	return assemble(list, lang), nil
}

// Invalidate drops the cached knowledge set, e.g. after a review creates a
// schedule row.
func (b *Builder) Invalidate(ctx context.Context, userID int64, lang language.Language) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Delete(ctx, cache.KnownSetKey(userID, lang.Code())); err != nil {
		log.Printf("[Vocab] Failed to invalidate knowledge set cache: %v", err)
	}
}

// assemble unions the tracked list with the function-word baseline. The
// reportable count excludes function words so the difficulty curve tracks
// real vocabulary growth, not grammar coverage.
func assemble(tracked []string, lang language.Language) *KnownSet {
	set := make(map[string]struct{}, len(tracked)+len(lang.FunctionWords()))

	reportable := 0
	for _, form := range tracked {
		if _, dup := set[form]; dup {
			continue
		}
		set[form] = struct{}{}
		if !lang.IsFunctionWord(form) {
			reportable++
		}
	}

	for form := range lang.FunctionWords() {
		set[form] = struct{}{}
	}

	return &KnownSet{
		Set:             set,
		List:            tracked,
		ReportableCount: reportable,
	}
}

// StoreSource adapts a VocabularyStore to a Source.
type StoreSource struct {
	Label string
	Store store.VocabularyStore
}

func (s StoreSource) Name() string { return s.Label }

func (s StoreSource) List(ctx context.Context, userID int64, lang language.Language) ([]store.WordEntry, error) {
	return s.Store.ListKnownWords(ctx, userID, lang)
}

// ScheduleSource exposes reviewed words as a vocabulary source, so words
// that only ever appeared in flashcard reviews still count as known.
type ScheduleSource struct {
	Store store.ScheduleStore
}

func (s ScheduleSource) Name() string { return "schedules" }

func (s ScheduleSource) List(ctx context.Context, userID int64, lang language.Language) ([]store.WordEntry, error) {
	return s.Store.ListScheduledWords(ctx, userID, lang)
}
