package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lexiread/api/internal/config"
	"github.com/lexiread/api/internal/model"
	"github.com/lexiread/api/internal/textgen"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Issue struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Re-runs the tokenizer over every stored text and reports rows whose stored
// token array or word count no longer matches, e.g. after tokenizer changes.
func main() {
	workers := flag.Int("workers", 10, "Number of parallel workers")
	lang := flag.String("language", "", "Restrict to one language (empty = all)")
	outputFile := flag.String("output", "audit_results.json", "Output file for results")
	flag.Parse()

	cfg := config.Load()
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	query := db.Model(&model.GeneratedText{})
	if *lang != "" {
		query = query.Where("language = ?", *lang)
	}

	var total int64
	query.Count(&total)
	fmt.Printf("Auditing %d texts with %d workers...\n", total, *workers)

	textChan := make(chan model.GeneratedText, *workers*10)
	issueChan := make(chan Issue, 1000)

	var processed int64
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for text := range textChan {
				for _, issue := range auditText(&text) {
					issueChan <- issue
				}
				if n := atomic.AddInt64(&processed, 1); n%500 == 0 {
					fmt.Printf("Progress: %d/%d\n", n, total)
				}
			}
		}()
	}

	var issues []Issue
	done := make(chan struct{})
	go func() {
		for issue := range issueChan {
			issues = append(issues, issue)
		}
		close(done)
	}()

	const batchSize = 200
	var batch []model.GeneratedText
	result := db.Model(&model.GeneratedText{}).
		Scopes(func(tx *gorm.DB) *gorm.DB {
			if *lang != "" {
				return tx.Where("language = ?", *lang)
			}
			return tx
		}).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			for _, text := range batch {
				textChan <- text
			}
			return nil
		})
	if result.Error != nil {
		log.Fatalf("Failed to scan texts: %v", result.Error)
	}

	close(textChan)
	wg.Wait()
	close(issueChan)
	<-done

	fmt.Printf("Audit complete: %d texts, %d issues\n", processed, len(issues))

	raw, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	if err := os.WriteFile(*outputFile, raw, 0o644); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputFile)
}

func auditText(text *model.GeneratedText) []Issue {
	var issues []Issue

	tokens := textgen.Tokenize(text.Content)

	if count := textgen.CountWords(text.Content); count != text.WordCount {
		issues = append(issues, Issue{
			ID:      text.ID,
			Type:    "word_count_mismatch",
			Details: fmt.Sprintf("stored %d, recomputed %d", text.WordCount, count),
		})
	}

	stored, err := text.DecodeTokens()
	if err != nil {
		issues = append(issues, Issue{
			ID:      text.ID,
			Type:    "tokens_unreadable",
			Details: err.Error(),
		})
		return issues
	}

	if len(stored) != len(tokens) {
		issues = append(issues, Issue{
			ID:      text.ID,
			Type:    "token_count_mismatch",
			Details: fmt.Sprintf("stored %d, recomputed %d", len(stored), len(tokens)),
		})
		return issues
	}

	for i := range tokens {
		if stored[i].Text != tokens[i].Text || stored[i].Punct != tokens[i].Punct {
			issues = append(issues, Issue{
				ID:      text.ID,
				Type:    "token_mismatch",
				Details: fmt.Sprintf("position %d: stored %q, recomputed %q", i, stored[i].Text, tokens[i].Text),
			})
			break
		}
	}

	return issues
}
