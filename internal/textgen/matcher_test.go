package textgen

import (
	"context"
	"errors"
	"testing"

	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTextStore struct {
	findCandidates func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error)
	insertText     func(ctx context.Context, text *model.GeneratedText) error
	setAudioURL    func(ctx context.Context, textID, audioURL string) error
}

func (m *mockTextStore) FindCandidates(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
	return m.findCandidates(ctx, lang, tier, minCount, maxCount, limit)
}

func (m *mockTextStore) InsertText(ctx context.Context, text *model.GeneratedText) error {
	if m.insertText != nil {
		return m.insertText(ctx, text)
	}
	return nil
}

func (m *mockTextStore) SetAudioURL(ctx context.Context, textID, audioURL string) error {
	if m.setAudioURL != nil {
		return m.setAudioURL(ctx, textID, audioURL)
	}
	return nil
}

func knownSetOf(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func TestFindReusableWindowBounds(t *testing.T) {
	var gotMin, gotMax, gotLimit int
	store := &mockTextStore{
		findCandidates: func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
			gotMin, gotMax, gotLimit = minCount, maxCount, limit
			return nil, nil
		},
	}

	text, err := NewMatcher(store).FindReusable(context.Background(), language.English, "beginner", knownSetOf("cat"), 3, 100)

	require.NoError(t, err)
	assert.Nil(t, text)
	assert.Equal(t, 50, gotMin)
	assert.Equal(t, 150, gotMax)
	assert.Equal(t, CandidateLimit, gotLimit)
}

// A text stored for a learner with 80 required known words is inside the
// window for a learner with 100 reportable words but outside it for one
// with 200, so only the first learner can reuse it.
func TestFindReusableWindowSelectsPeers(t *testing.T) {
	stored := model.GeneratedText{
		ID:            "t1",
		Content:       "the cat sat on the mat",
		RequiredCount: 80,
	}
	store := &mockTextStore{
		findCandidates: func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
			if stored.RequiredCount >= minCount && stored.RequiredCount <= maxCount {
				return []model.GeneratedText{stored}, nil
			}
			return nil, nil
		},
	}
	matcher := NewMatcher(store)
	known := knownSetOf("the", "cat", "sat", "on", "mat")

	near, err := matcher.FindReusable(context.Background(), language.English, "beginner", known, 3, 100)
	require.NoError(t, err)
	require.NotNil(t, near)
	assert.Equal(t, "t1", near.ID)

	far, err := matcher.FindReusable(context.Background(), language.English, "beginner", known, 3, 200)
	require.NoError(t, err)
	assert.Nil(t, far)
}

func TestFindReusableRevalidatesAgainstRequester(t *testing.T) {
	store := &mockTextStore{
		findCandidates: func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
			return []model.GeneratedText{
				{ID: "hard", Content: "glaciers carve valleys through ancient mountains", RequiredCount: 90},
				{ID: "easy", Content: "the cat sat on the mat with a bird", RequiredCount: 85},
			}, nil
		},
	}
	known := knownSetOf("the", "cat", "sat", "on", "mat", "with", "a")

	text, err := NewMatcher(store).FindReusable(context.Background(), language.English, "beginner", known, 2, 100)

	require.NoError(t, err)
	require.NotNil(t, text)
	// The first candidate has five unknown words against this learner's
	// vocabulary and is skipped even though its stored count is in range.
	assert.Equal(t, "easy", text.ID)
}

func TestFindReusableRelabelsTokensPerRequester(t *testing.T) {
	store := &mockTextStore{
		findCandidates: func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
			return []model.GeneratedText{
				{ID: "t1", Content: "the cat saw a fox", RequiredCount: 80},
			}, nil
		},
	}
	known := knownSetOf("the", "cat", "saw", "a")

	text, err := NewMatcher(store).FindReusable(context.Background(), language.English, "beginner", known, 2, 100)

	require.NoError(t, err)
	require.NotNil(t, text)

	tokens, err := text.DecodeTokens()
	require.NoError(t, err)

	byText := make(map[string]model.Token, len(tokens))
	for _, tok := range tokens {
		byText[tok.Text] = tok
	}
	assert.True(t, byText["cat"].Known)
	assert.False(t, byText["fox"].Known)
	assert.True(t, byText["fox"].New)
}

func TestFindReusableStoreError(t *testing.T) {
	store := &mockTextStore{
		findCandidates: func(ctx context.Context, lang language.Language, tier string, minCount, maxCount, limit int) ([]model.GeneratedText, error) {
			return nil, errors.New("db down")
		},
	}

	_, err := NewMatcher(store).FindReusable(context.Background(), language.English, "beginner", knownSetOf("cat"), 3, 100)

	assert.Error(t, err)
}
