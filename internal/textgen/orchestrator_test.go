package textgen

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/lexiread/api/internal/difficulty"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorCall struct {
	prompt      string
	system      string
	temperature float64
}

type mockGenerator struct {
	mu      sync.Mutex
	calls   []generatorCall
	respond func(call generatorCall) (string, error)
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	m.mu.Lock()
	call := generatorCall{prompt: prompt, system: system, temperature: temperature}
	m.calls = append(m.calls, call)
	m.mu.Unlock()
	return m.respond(call)
}

// textCalls returns the generation calls, excluding title requests.
func (m *mockGenerator) textCalls() []generatorCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []generatorCall
	for _, c := range m.calls {
		if !isTitleCall(c) {
			calls = append(calls, c)
		}
	}
	return calls
}

func isTitleCall(c generatorCall) bool {
	return strings.HasPrefix(c.prompt, "Give a short title")
}

func scriptedGenerator(texts ...string) *mockGenerator {
	m := &mockGenerator{}
	i := 0
	m.respond = func(call generatorCall) (string, error) {
		if isTitleCall(call) {
			return "A Day in the Garden", nil
		}
		if i >= len(texts) {
			return texts[len(texts)-1], nil
		}
		text := texts[i]
		i++
		return text, nil
	}
	return m
}

func fixedRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func baseRequest(known []string, budget, reportable int) Request {
	set := make(map[string]struct{}, len(known))
	for _, w := range known {
		set[w] = struct{}{}
	}
	return Request{
		UserID:          1,
		Lang:            language.English,
		Tier:            "beginner",
		KnownSet:        set,
		KnownList:       known,
		ReportableCount: reportable,
		Difficulty: difficulty.Spec{
			Label:         "short story",
			TargetWords:   95,
			NewWordBudget: budget,
		},
	}
}

var readerVocab = []string{
	"the", "cat", "dog", "sat", "on", "a", "mat", "ran", "to", "house",
	"and", "saw", "bird", "tree", "big", "small", "was", "in", "garden",
	"sun", "near", "fly",
}

func TestGenerateRetriesWithStricterPrompt(t *testing.T) {
	overBudget := "the cat saw a zebra, a walrus, a ferret, a badger, a weasel, a heron, a pangolin and a marmot in the garden."
	withinBudget := "the cat and the dog sat on a mat in the garden and saw a zebra, a walrus, a ferret and a badger near the tree."
	gen := scriptedGenerator(overBudget, withinBudget)
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(readerVocab, 5, 120))

	require.NoError(t, err)
	assert.Equal(t, withinBudget, text.Content)

	calls := gen.textCalls()
	require.Len(t, calls, 2)
	assert.InDelta(t, 0.9, calls[0].temperature, 1e-9)
	assert.Contains(t, calls[0].prompt, "Introduce at most 5 words")

	// The retry halves the stated allowance, lowers the temperature and
	// tells the generator why the previous draft was rejected.
	assert.InDelta(t, 0.6, calls[1].temperature, 1e-9)
	assert.Contains(t, calls[1].prompt, "Introduce at most 2 words")
	assert.Contains(t, calls[1].prompt, "previous draft used 8 unfamiliar words")
}

func TestGenerateTruncatesAfterExhaustedAttempts(t *testing.T) {
	overBudget := "The cat sat on a mat in the garden and saw a bird fly. " +
		"The dog ran to a zebra beside the big tree quickly. " +
		"A walrus and a ferret swam past the heron yesterday."
	gen := scriptedGenerator(overBudget, overBudget)
	var inserted *model.GeneratedText
	texts := &mockTextStore{
		insertText: func(ctx context.Context, text *model.GeneratedText) error {
			inserted = text
			return nil
		},
	}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(readerVocab, 2, 120))

	require.NoError(t, err)
	require.Len(t, gen.textCalls(), 2)

	// Only the first sentence fits the budget; the rest is cut at a
	// sentence boundary.
	assert.Contains(t, text.Content, "saw a bird fly")
	assert.NotContains(t, text.Content, "zebra")
	assert.NotContains(t, text.Content, "walrus")
	require.NotNil(t, inserted)
	assert.Equal(t, text.Content, inserted.Content)
}

func TestGenerateKeepsLastAttemptWhenTruncationTooShort(t *testing.T) {
	// Every sentence blows the budget, so no prefix survives truncation.
	overBudget := "A zebra chased a walrus across the frozen tundra slowly. " +
		"The ferret and the badger watched from a distant ridge."
	gen := scriptedGenerator(overBudget, overBudget)
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(readerVocab, 1, 120))

	require.NoError(t, err)
	assert.Equal(t, overBudget, text.Content)
}

func TestGenerateBootstrapAcceptsFirstDraft(t *testing.T) {
	draft := "A zebra chased a walrus across the frozen tundra while a heron watched from above."
	gen := scriptedGenerator(draft)
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(nil, 1, 0))

	require.NoError(t, err)
	assert.Equal(t, draft, text.Content)
	assert.Len(t, gen.textCalls(), 1)
}

func TestGenerateRetriesTooShortResponses(t *testing.T) {
	good := "the cat and the dog sat on a mat in the garden and saw the big tree near the small house."
	gen := &mockGenerator{}
	textCall := 0
	gen.respond = func(call generatorCall) (string, error) {
		if isTitleCall(call) {
			return "The Garden", nil
		}
		textCall++
		if textCall == 1 {
			return "too short", nil
		}
		return good, nil
	}
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(readerVocab, 3, 120))

	require.NoError(t, err)
	assert.Equal(t, good, text.Content)
	assert.Equal(t, 2, textCall)
}

func TestGenerateFailsAfterGeneratorExhausted(t *testing.T) {
	gen := &mockGenerator{}
	gen.respond = func(call generatorCall) (string, error) {
		return "", errors.New("upstream unavailable")
	}
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	_, err := o.Generate(context.Background(), baseRequest(readerVocab, 3, 120))

	require.Error(t, err)
	assert.Len(t, gen.calls, 3)
}

func TestGeneratePersistenceFailureIsFatal(t *testing.T) {
	good := "the cat and the dog sat on a mat in the garden and saw the big tree near the small house."
	gen := scriptedGenerator(good)
	texts := &mockTextStore{
		insertText: func(ctx context.Context, text *model.GeneratedText) error {
			return errors.New("db down")
		},
	}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	_, err := o.Generate(context.Background(), baseRequest(readerVocab, 3, 120))

	assert.Error(t, err)
}

func TestGenerateUsesTitleFromGenerator(t *testing.T) {
	good := "the cat and the dog sat on a mat in the garden and saw the big tree near the small house."
	gen := scriptedGenerator(good)
	texts := &mockTextStore{}

	o := NewOrchestrator(gen, texts, nil, fixedRNG())
	text, err := o.Generate(context.Background(), baseRequest(readerVocab, 3, 120))

	require.NoError(t, err)
	assert.Equal(t, "A Day in the Garden", text.Title)
}
