package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexiread/api/internal/client"
	"github.com/lexiread/api/internal/difficulty"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/middleware"
	"github.com/lexiread/api/internal/srs"
	"github.com/lexiread/api/internal/textgen"
	"github.com/lexiread/api/internal/vocab"
)

const generateAction = "generate"

type ContentHandler struct {
	vocab        *vocab.Builder
	matcher      *textgen.Matcher
	orchestrator *textgen.Orchestrator
	picker       *srs.Picker
	limiter      *client.RateLimiter // nil disables the quota check
}

func NewContentHandler(vocabBuilder *vocab.Builder, matcher *textgen.Matcher, orchestrator *textgen.Orchestrator, picker *srs.Picker, limiter *client.RateLimiter) *ContentHandler {
	return &ContentHandler{
		vocab:        vocabBuilder,
		matcher:      matcher,
		orchestrator: orchestrator,
		picker:       picker,
		limiter:      limiter,
	}
}

type GenerateContentRequest struct {
	Language        string `json:"language" binding:"required"`
	ProficiencyTier string `json:"proficiencyTier"`
	Topic           string `json:"topic"`
}

// Generate serves one piece of comprehensible input: a cached text that
// still satisfies the learner's ratio constraint when possible, a freshly
// generated one otherwise.
func (h *ContentHandler) Generate(c *gin.Context) {
	var req GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	lang, err := language.Parse(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier := req.ProficiencyTier
	if tier == "" {
		tier = "beginner"
	}

	userID := c.GetInt64("userID")
	ctx := c.Request.Context()

	// Daily generation quota lives in the rate-limiter collaborator; its
	// unavailability must not take content generation down with it.
	if h.limiter != nil {
		result, err := h.limiter.Check(ctx, userID, generateAction)
		if err != nil {
			log.Printf("[Content] Rate limiter unavailable, failing open: %v", err)
		} else if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":          "Daily generation limit reached. Try again later.",
				"budgetExceeded": true,
			})
			return
		}
	}

	knownSet, err := h.vocab.Build(ctx, userID, lang)
	if err != nil {
		log.Printf("[Content] Failed to build knowledge set for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vocabulary"})
		return
	}

	spec := difficulty.Pick(knownSet.ReportableCount)

	cached, err := h.matcher.FindReusable(ctx, lang, tier, knownSet.Set, spec.NewWordBudget, knownSet.ReportableCount)
	if err != nil {
		log.Printf("[Content] Cache lookup failed: %v", err)
		// A broken cache path degrades to generation.
	}
	middleware.RecordCacheLookup(cached != nil, lang.Code())
	if cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	priorityLimit := spec.NewWordBudget * 2
	if priorityLimit < 5 {
		priorityLimit = 5
	}
	priorityWords, err := h.picker.DuePriorityWords(ctx, userID, lang, priorityLimit)
	if err != nil {
		log.Printf("[Content] Priority word selection failed: %v", err)
		// Generation still works without review nudging.
	}

	text, err := h.orchestrator.Generate(ctx, textgen.Request{
		UserID:          userID,
		Lang:            lang,
		Tier:            tier,
		Topic:           req.Topic,
		KnownSet:        knownSet.Set,
		KnownList:       knownSet.List,
		ReportableCount: knownSet.ReportableCount,
		Difficulty:      spec,
		PriorityWords:   priorityWords,
	})
	if err != nil {
		log.Printf("[Content] Generation failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content"})
		return
	}

	c.JSON(http.StatusOK, text)
}

// Stats reports the learner's reportable vocabulary size and the difficulty
// band it lands in.
func (h *ContentHandler) Stats(c *gin.Context) {
	lang, err := language.Parse(c.Query("language"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt64("userID")

	knownSet, err := h.vocab.Build(c.Request.Context(), userID, lang)
	if err != nil {
		log.Printf("[Content] Failed to build knowledge set for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vocabulary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":   lang.Code(),
		"knownWords": knownSet.ReportableCount,
		"difficulty": difficulty.Pick(knownSet.ReportableCount),
	})
}
