package model

import "time"

// Review schedule statuses. Forward-only except a "forgot" review, which
// forces known back to learning.
const (
	StatusUnseen   = "unseen"
	StatusLearning = "learning"
	StatusKnown    = "known"
)

// WordSchedule is the per-(learner, language, word) spaced-repetition row.
// Created lazily on first review and never deleted.
type WordSchedule struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64      `gorm:"not null;uniqueIndex:idx_schedule_user_lang_word" json:"userId"`
	Language       string     `gorm:"not null;size:8;uniqueIndex:idx_schedule_user_lang_word" json:"language"`
	Word           string     `gorm:"not null;size:128;uniqueIndex:idx_schedule_user_lang_word" json:"word"`
	Ease           float64    `gorm:"not null" json:"ease"`
	IntervalDays   int        `gorm:"not null" json:"intervalDays"`
	Repetitions    int        `gorm:"not null" json:"repetitions"`
	Status         string     `gorm:"not null;size:16" json:"status"`
	DueAt          time.Time  `gorm:"index" json:"dueAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (WordSchedule) TableName() string {
	return "word_schedules"
}

// ReviewLog is an append-only history row, written best-effort after each
// review. Analytics only; nothing in the pipeline reads it back.
type ReviewLog struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"userId"`
	Language      string    `gorm:"not null;size:8" json:"language"`
	Word          string    `gorm:"not null;size:128" json:"word"`
	Rating        string    `gorm:"not null;size:8" json:"rating"`
	EaseAfter     float64   `json:"easeAfter"`
	IntervalAfter int       `json:"intervalAfter"`
	ReviewedAt    time.Time `json:"reviewedAt"`
}

func (ReviewLog) TableName() string {
	return "review_logs"
}
