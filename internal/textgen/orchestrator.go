package textgen

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexiread/api/internal/difficulty"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/middleware"
	"github.com/lexiread/api/internal/model"
	"github.com/lexiread/api/internal/store"
)

const (
	// Two shots at satisfying the ratio; after that, truncation.
	maxValidationAttempts = 2

	// Transient generator failures (timeout, empty or too-short response)
	// are retried without consuming a validation attempt, up to this cap.
	maxCallAttempts = 3

	minResponseChars  = 40
	minTruncatedWords = 10

	generationTimeout = 45 * time.Second
	titleTimeout      = 10 * time.Second
	audioTimeout      = 20 * time.Second
)

// Generator is the opaque text-generation collaborator.
type Generator interface {
	GenerateText(ctx context.Context, prompt, system string, temperature float64) (string, error)
}

// Synthesizer is the optional audio collaborator, invoked fire-and-forget.
type Synthesizer interface {
	Synthesize(ctx context.Context, textID, text string, lang language.Language) (string, error)
}

// Request carries everything the orchestrator needs for one generation.
type Request struct {
	UserID          int64
	Lang            language.Language
	Tier            string
	Topic           string
	KnownSet        map[string]struct{}
	KnownList       []string
	ReportableCount int
	Difficulty      difficulty.Spec
	PriorityWords   []string
}

// Orchestrator drives the generator through prompt construction,
// retry-on-violation and the truncation fallback, then persists the result.
type Orchestrator struct {
	generator Generator
	texts     store.TextStore
	speech    Synthesizer // nil disables audio
	splitter  SentenceSplitter

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOrchestrator wires the orchestrator. A nil rng gets a time-based seed;
// tests inject a fixed one for deterministic prompt sampling.
func NewOrchestrator(generator Generator, texts store.TextStore, speech Synthesizer, rng *rand.Rand) *Orchestrator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Orchestrator{
		generator: generator,
		texts:     texts,
		speech:    speech,
		splitter:  RegexSplitter{},
		rng:       rng,
	}
}

// SetSplitter swaps the sentence segmentation strategy.
func (o *Orchestrator) SetSplitter(s SentenceSplitter) {
	o.splitter = s
}

// Generate produces, validates and persists one text for the request.
// Ratio violations are retried with a stricter prompt and finally degraded
// via sentence truncation; only collaborator exhaustion or the primary
// insert failing are fatal.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*model.GeneratedText, error) {
	sample := o.sampleKnownWords(req.KnownList)

	var lastText string
	var accepted string

	state := firstAttempt(req.Difficulty.NewWordBudget)
	for state.index <= maxValidationAttempts {
		prompt := buildPrompt(req.Lang, req.Tier, req.Topic, req.Difficulty.Label,
			req.Difficulty.TargetWords, sample, req.PriorityWords, state)

		raw, err := o.callGenerator(ctx, prompt, buildSystemInstruction(req.Lang), state.temperature)
		if err != nil {
			return nil, err
		}

		lastText = StripMarkup(raw)

		valid, _, unknownCount := ValidateRatio(lastText, req.KnownSet, req.Difficulty.NewWordBudget)
		// With nothing known yet there is no ratio to violate; accept the
		// bootstrap text as-is.
		if valid || req.ReportableCount == 0 {
			middleware.RecordGenerationAttempt(true)
			accepted = lastText
			break
		}

		middleware.RecordGenerationAttempt(false)
		log.Printf("[Generate] Attempt %d rejected: %d distinct unknown words, budget %d",
			state.index, unknownCount, req.Difficulty.NewWordBudget)
		state = state.next(unknownCount)
	}

	if accepted == "" {
		if prefix, ok := o.truncate(lastText, req.KnownSet, req.Difficulty.NewWordBudget); ok {
			middleware.RecordTruncation()
			log.Printf("[Generate] Accepted truncated text (%d words)", CountWords(prefix))
			accepted = prefix
		} else {
			// A too-short truncation is worse than an over-budget text;
			// return the last attempt rather than empty content.
			log.Printf("[Generate] Truncation below minimum length, keeping last attempt")
			accepted = lastText
		}
	}

	text := &model.GeneratedText{
		ID:            uuid.NewString(),
		Language:      req.Lang.Code(),
		Tier:          req.Tier,
		Topic:         req.Topic,
		Title:         o.makeTitle(ctx, req, accepted),
		Content:       accepted,
		PriorityWords: req.PriorityWords,
		RequiredCount: req.ReportableCount,
		WordCount:     CountWords(accepted),
		CreatedAt:     time.Now(),
	}
	if err := text.EncodeTokens(Label(Tokenize(accepted), req.KnownSet)); err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}

	// Downstream features rely on the row existing; no durable record, no
	// content.
	if err := o.texts.InsertText(ctx, text); err != nil {
		return nil, fmt.Errorf("failed to persist generated text: %w", err)
	}

	if o.speech != nil {
		go o.synthesizeAudio(text.ID, accepted, req.Lang)
	}

	return text, nil
}

// callGenerator retries transient failures (timeouts, empty or too-short
// responses) up to the call cap, then fails the request.
func (o *Orchestrator) callGenerator(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	var lastErr error

	for call := 1; call <= maxCallAttempts; call++ {
		callCtx, cancel := context.WithTimeout(ctx, generationTimeout)
		start := time.Now()
		raw, err := o.generator.GenerateText(callCtx, prompt, system, temperature)
		cancel()
		middleware.RecordGeneratorCall(err == nil, time.Since(start))

		if err != nil {
			log.Printf("[Generate] Generator call %d failed: %v", call, err)
			lastErr = err
			continue
		}
		if len(strings.TrimSpace(raw)) < minResponseChars {
			log.Printf("[Generate] Generator call %d returned too-short response (%d chars)",
				call, len(raw))
			lastErr = fmt.Errorf("generator response too short")
			continue
		}
		return raw, nil
	}

	return "", fmt.Errorf("generator failed after %d calls: %w", maxCallAttempts, lastErr)
}

// truncate keeps whole sentences while the running distinct-unknown count
// stays within budget. Reports false when the surviving prefix is too short
// to be worth returning.
func (o *Orchestrator) truncate(text string, knownSet map[string]struct{}, budget int) (string, bool) {
	running := make(map[string]struct{})
	var kept []string

	for _, sentence := range o.splitter.Split(text) {
		_, unknown, _ := ValidateRatio(sentence, knownSet, budget)
		merged := len(running)
		for form := range unknown {
			if _, ok := running[form]; !ok {
				merged++
			}
		}
		if merged > budget {
			break
		}
		for form := range unknown {
			running[form] = struct{}{}
		}
		kept = append(kept, sentence)
	}

	prefix := strings.Join(kept, " ")
	if CountWords(prefix) < minTruncatedWords {
		return "", false
	}
	return prefix, true
}

// makeTitle asks the generator for a short title on a tight timeout, falling
// back to the topic or the text's opening words.
func (o *Orchestrator) makeTitle(ctx context.Context, req Request, content string) string {
	titleCtx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	raw, err := o.generator.GenerateText(titleCtx, buildTitlePrompt(req.Lang, content), "", 0.4)
	if err == nil {
		title := strings.Trim(strings.TrimSpace(StripMarkup(raw)), `"“”'`)
		if title != "" && len(title) <= 120 {
			return title
		}
	}

	if req.Topic != "" {
		return req.Topic
	}

	words := strings.Fields(content)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

func (o *Orchestrator) synthesizeAudio(textID, content string, lang language.Language) {
	ctx, cancel := context.WithTimeout(context.Background(), audioTimeout)
	defer cancel()

	audioURL, err := o.speech.Synthesize(ctx, textID, content, lang)
	if err != nil {
		log.Printf("[Audio] Synthesis failed for %s: %v", textID, err)
		return
	}
	if err := o.texts.SetAudioURL(ctx, textID, audioURL); err != nil {
		log.Printf("[Audio] Failed to store audio URL for %s: %v", textID, err)
	}
}

// sampleKnownWords shuffles and slices the known list down to the prompt
// hint size. The rand source is injected so tests can pin the order.
func (o *Orchestrator) sampleKnownWords(known []string) []string {
	if len(known) == 0 {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	sample := make([]string, len(known))
	copy(sample, known)
	o.rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	if len(sample) > knownSampleSize {
		sample = sample[:knownSampleSize]
	}
	return sample
}
