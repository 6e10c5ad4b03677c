package srs

import (
	"context"
	"time"

	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"github.com/lexiread/api/internal/store"
)

// Picker selects the priority words that generation should nudge the learner
// to encounter: overdue reviews first, then words never scheduled at all.
type Picker struct {
	schedules store.ScheduleStore
}

func NewPicker(schedules store.ScheduleStore) *Picker {
	return &Picker{schedules: schedules}
}

// DuePriorityWords returns up to limit words: overdue schedules soonest-due
// first, then never-scheduled tracked words by recency of first encounter.
// Deduplicated. Mastered words and function words are excluded; they need no
// nudging.
func (p *Picker) DuePriorityWords(ctx context.Context, userID int64, lang language.Language, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	due, err := p.schedules.ListDue(ctx, userID, lang, time.Now(), limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, limit)
	words := make([]string, 0, limit)
	add := func(word string) bool {
		if len(words) >= limit {
			return false
		}
		if _, dup := seen[word]; dup {
			return true
		}
		if lang.IsFunctionWord(word) {
			return true
		}
		seen[word] = struct{}{}
		words = append(words, word)
		return true
	}

	for _, schedule := range due {
		if schedule.Status == model.StatusKnown {
			continue
		}
		if !add(schedule.Word) {
			break
		}
	}

	if len(words) < limit {
		unscheduled, err := p.schedules.ListUnscheduled(ctx, userID, lang, limit)
		if err != nil {
			// Overdue words alone are still a usable priority list.
			return words, nil
		}
		for _, word := range unscheduled {
			if !add(word) {
				break
			}
		}
	}

	return words, nil
}
