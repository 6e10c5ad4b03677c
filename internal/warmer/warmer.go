// Package warmer pre-generates texts at common vocabulary sizes so first
// requests in a band hit the text cache instead of the generator.
package warmer

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lexiread/api/internal/difficulty"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/textgen"
)

// Representative vocabulary sizes, one per difficulty band.
var bandSizes = []int{10, 35, 75, 150, 350, 600}

type target struct {
	lang language.Language
	size int
}

type Warmer struct {
	matcher      *textgen.Matcher
	orchestrator *textgen.Orchestrator
	tier         string

	frequency map[language.Language][]string
	targets   []target

	currentIndex int
	interval     time.Duration
	running      bool
	mu           sync.Mutex
	stopChan     chan struct{}
}

type Config struct {
	WordListDir string
	Interval    time.Duration
	Tier        string
	Languages   []language.Language
}

func New(matcher *textgen.Matcher, orchestrator *textgen.Orchestrator, cfg Config) (*Warmer, error) {
	if cfg.Interval == 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Tier == "" {
		cfg.Tier = "beginner"
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = language.All()
	}

	frequency := make(map[language.Language][]string)
	var targets []target
	for _, lang := range cfg.Languages {
		words, err := loadWordList(filepath.Join(cfg.WordListDir, "frequency_"+lang.Code()+".txt"))
		if err != nil {
			log.Printf("[Warmer] No frequency list for %s, skipping: %v", lang.Code(), err)
			continue
		}
		frequency[lang] = words
		for _, size := range bandSizes {
			if size <= len(words) {
				targets = append(targets, target{lang: lang, size: size})
			}
		}
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("no usable frequency lists under %s", cfg.WordListDir)
	}

	log.Printf("[Warmer] Prepared %d warm targets across %d languages", len(targets), len(frequency))

	return &Warmer{
		matcher:      matcher,
		orchestrator: orchestrator,
		tier:         cfg.Tier,
		frequency:    frequency,
		targets:      targets,
		interval:     cfg.Interval,
		stopChan:     make(chan struct{}),
	}, nil
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
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}

	return words, scanner.Err()
}

func (w *Warmer) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	log.Printf("[Warmer] Starting with interval %v", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Warmer] Context cancelled, stopping")
			return
		case <-w.stopChan:
			log.Println("[Warmer] Stop signal received")
			return
		case <-ticker.C:
			w.warmNextTarget(ctx)
		}
	}
}

func (w *Warmer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		close(w.stopChan)
		w.running = false
		log.Println("[Warmer] Stopped")
	}
}

// warmNextTarget checks one (language, band) pair per tick and generates a
// text for it when the cache has no acceptable candidate.
func (w *Warmer) warmNextTarget(ctx context.Context) {
	w.mu.Lock()
	if w.currentIndex >= len(w.targets) {
		w.currentIndex = 0
		log.Println("[Warmer] Completed all targets, restarting cycle")
	}
	t := w.targets[w.currentIndex]
	w.currentIndex++
	w.mu.Unlock()

	knownList := w.frequency[t.lang][:t.size]
	knownSet := make(map[string]struct{}, t.size)
	for _, word := range knownList {
		knownSet[word] = struct{}{}
	}
	for word := range t.lang.FunctionWords() {
		knownSet[word] = struct{}{}
	}

	spec := difficulty.Pick(t.size)

	cached, err := w.matcher.FindReusable(ctx, t.lang, w.tier, knownSet, spec.NewWordBudget, t.size)
	if err != nil {
		log.Printf("[Warmer] Cache check failed for %s/%d: %v", t.lang.Code(), t.size, err)
		return
	}
	if cached != nil {
		return
	}

	log.Printf("[Warmer] Generating %s text for %s at %d known words",
		spec.Label, t.lang.Code(), t.size)

	_, err = w.orchestrator.Generate(ctx, textgen.Request{
		Lang:            t.lang,
		Tier:            w.tier,
		KnownSet:        knownSet,
		KnownList:       knownList,
		ReportableCount: t.size,
		Difficulty:      spec,
	})
	if err != nil {
		log.Printf("[Warmer] Generation failed for %s/%d: %v", t.lang.Code(), t.size, err)
		return
	}

	log.Printf("[Warmer] Warmed %s at %d known words", t.lang.Code(), t.size)
}

// GetStatus returns the warmer's progress for the status endpoint.
func (w *Warmer) GetStatus() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	languages := make([]string, 0, len(w.frequency))
	for lang := range w.frequency {
		languages = append(languages, lang.Code())
	}

	return map[string]interface{}{
		"running":      w.running,
		"totalTargets": len(w.targets),
		"currentIndex": w.currentIndex,
		"interval":     w.interval.String(),
		"languages":    languages,
	}
}
