package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/lexiread/api/internal/config"
	"github.com/lexiread/api/internal/database"
	"github.com/lexiread/api/internal/language"
	"gorm.io/gorm"
)

// Seeds a learner's tracked vocabulary from a word list file. Useful for
// demo accounts and for reproducing a vocabulary size locally.
func main() {
	filePath := flag.String("file", "data/frequency_en.txt", "Path to word list file")
	langCode := flag.String("language", "en", "Language code")
	userID := flag.Int64("user", 1, "Learner ID to seed")
	limit := flag.Int("limit", 0, "Seed only the first N words (0 = all)")
	flag.Parse()

	lang, err := language.Parse(*langCode)
	if err != nil {
		log.Fatalf("Invalid language: %v", err)
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	words, err := loadWordList(*filePath)
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	if *limit > 0 && *limit < len(words) {
		words = words[:*limit]
	}

	log.Printf("Seeding %d words from %s for user %d (%s)", len(words), *filePath, *userID, lang.Code())

	inserted, skipped := seedWords(db, words, *userID, lang)
	log.Printf("Seeding complete. Inserted: %d, Skipped: %d", inserted, skipped)
}

func loadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}

	return words, scanner.Err()
}

func seedWords(db *gorm.DB, words []string, userID int64, lang language.Language) (inserted, skipped int) {
	for _, word := range words {
		result := db.Exec(`
			INSERT INTO vocabulary_entries (user_id, language, word, source, first_seen_at, created_at)
			VALUES (?, ?, ?, 'seed', NOW(), NOW())
			ON CONFLICT (user_id, language, word) DO NOTHING
		`, userID, lang.Code(), word)

		if result.Error != nil {
			log.Printf("Error inserting word %s: %v", word, result.Error)
			skipped++
			continue
		}

		if result.RowsAffected > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	return inserted, skipped
}
