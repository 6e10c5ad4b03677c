package database

import (
	"github.com/lexiread/api/internal/config"
	"github.com/lexiread/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.VocabularyEntry{},
		&model.WordSchedule{},
		&model.ReviewLog{},
		&model.GeneratedText{},
	)
	if err != nil {
		return err
	}

	// Dedup guard for vocabulary rows; the unique schedule index comes from
	// the model tags.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_vocab_user_lang_word ON vocabulary_entries(user_id, language, word)")

	return nil
}
