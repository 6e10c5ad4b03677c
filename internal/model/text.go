package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Token is one tokenizer output element. The stored Known/New flags are the
// generation-time snapshot; they are relabeled against the viewing learner's
// vocabulary before a text leaves the API.
type Token struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
	Known    bool   `json:"known"`
	New      bool   `json:"new"`
	Punct    bool   `json:"punct"`
}

// GeneratedText is an immutable artifact once inserted; only the audio URL is
// filled in later by the fire-and-forget synthesis path.
type GeneratedText struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	Language      string         `gorm:"not null;size:8;index:idx_texts_lang_tier_count" json:"language"`
	Tier          string         `gorm:"not null;size:32;index:idx_texts_lang_tier_count" json:"proficiencyTier"`
	Topic         string         `gorm:"size:128" json:"topic"`
	Title         string         `gorm:"size:256" json:"title"`
	Content       string         `gorm:"not null;type:text" json:"content"`
	Tokens        datatypes.JSON `json:"tokens"`
	PriorityWords pq.StringArray `gorm:"type:text[]" json:"priorityWords"`
	RequiredCount int            `gorm:"not null;index:idx_texts_lang_tier_count" json:"requiredKnownWordCount"`
	WordCount     int            `gorm:"not null" json:"wordCount"`
	AudioURL      *string        `json:"audioUrl"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (GeneratedText) TableName() string {
	return "generated_texts"
}

func (t *GeneratedText) DecodeTokens() ([]Token, error) {
	var tokens []Token
	if len(t.Tokens) == 0 {
		return tokens, nil
	}
	err := json.Unmarshal(t.Tokens, &tokens)
	return tokens, err
}

func (t *GeneratedText) EncodeTokens(tokens []Token) error {
	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	t.Tokens = datatypes.JSON(raw)
	return nil
}
