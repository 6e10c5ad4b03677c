package model

import "time"

// VocabularyEntry is one word explicitly tracked by a learner, regardless of
// mastery stage. Lemma is filled by upstream import pipelines when available.
type VocabularyEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index:idx_vocab_user_lang" json:"userId"`
	Language    string    `gorm:"not null;size:8;index:idx_vocab_user_lang" json:"language"`
	Word        string    `gorm:"not null;size:128" json:"word"`
	Lemma       *string   `gorm:"size:128" json:"lemma"`
	Source      string    `gorm:"size:32" json:"source"`
	FirstSeenAt time.Time `json:"firstSeenAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (VocabularyEntry) TableName() string {
	return "vocabulary_entries"
}
