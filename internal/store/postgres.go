package store

import (
	"context"
	"errors"
	"time"

	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres implements VocabularyStore, ScheduleStore and TextStore on gorm.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) ListKnownWords(ctx context.Context, userID int64, lang language.Language) ([]WordEntry, error) {
	var rows []model.VocabularyEntry
	result := p.db.WithContext(ctx).
		Where("user_id = ? AND language = ?", userID, lang.Code()).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]WordEntry, len(rows))
	for i, row := range rows {
		entries[i] = WordEntry{Word: row.Word}
		if row.Lemma != nil {
			entries[i].Lemma = *row.Lemma
		}
	}
	return entries, nil
}

func (p *Postgres) GetSchedule(ctx context.Context, userID int64, lang language.Language, word string) (*model.WordSchedule, error) {
	var schedule model.WordSchedule
	result := p.db.WithContext(ctx).
		Where("user_id = ? AND language = ? AND word = ?", userID, lang.Code(), word).
		First(&schedule)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &schedule, nil
}

func (p *Postgres) UpsertSchedule(ctx context.Context, schedule *model.WordSchedule) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "language"}, {Name: "word"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ease", "interval_days", "repetitions", "status",
				"due_at", "last_reviewed_at", "updated_at",
			}),
		}).
		Create(schedule).Error
}

func (p *Postgres) ListDue(ctx context.Context, userID int64, lang language.Language, before time.Time, limit int) ([]model.WordSchedule, error) {
	var schedules []model.WordSchedule
	result := p.db.WithContext(ctx).
		Where("user_id = ? AND language = ? AND due_at <= ? AND status <> ?",
			userID, lang.Code(), before, model.StatusKnown).
		Order("due_at ASC").
		Limit(limit).
		Find(&schedules)
	return schedules, result.Error
}

func (p *Postgres) ListUnscheduled(ctx context.Context, userID int64, lang language.Language, limit int) ([]string, error) {
	var words []string
	result := p.db.WithContext(ctx).Raw(`
		SELECT ve.word FROM vocabulary_entries ve
		LEFT JOIN word_schedules ws
			ON ws.user_id = ve.user_id AND ws.language = ve.language AND ws.word = ve.word
		WHERE ve.user_id = ? AND ve.language = ? AND ws.id IS NULL
		ORDER BY ve.first_seen_at DESC
		LIMIT ?
	`, userID, lang.Code(), limit).Scan(&words)
	return words, result.Error
}

func (p *Postgres) ListScheduledWords(ctx context.Context, userID int64, lang language.Language) ([]WordEntry, error) {
	var words []string
	result := p.db.WithContext(ctx).
		Model(&model.WordSchedule{}).
		Where("user_id = ? AND language = ?", userID, lang.Code()).
		Pluck("word", &words)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]WordEntry, len(words))
	for i, w := range words {
		entries[i] = WordEntry{Word: w}
	}
	return entries, nil
}

func (p *Postgres) InsertReviewLog(ctx context.Context, entry *model.ReviewLog) error {
	return p.db.WithContext(ctx).Create(entry).Error
}

func (p *Postgres) FindCandidates(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
	var texts []model.GeneratedText
	result := p.db.WithContext(ctx).
		Where("language = ? AND tier = ? AND required_count BETWEEN ? AND ?",
			lang.Code(), tier, minCount, maxCount).
		Order("created_at DESC").
		Limit(limit).
		Find(&texts)
	return texts, result.Error
}

func (p *Postgres) InsertText(ctx context.Context, text *model.GeneratedText) error {
	return p.db.WithContext(ctx).Create(text).Error
}

func (p *Postgres) SetAudioURL(ctx context.Context, textID, audioURL string) error {
	return p.db.WithContext(ctx).
		Model(&model.GeneratedText{}).
		Where("id = ?", textID).
		Update("audio_url", audioURL).Error
}
