package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexiread/api/internal/language"
	"github.com/lexiread/api/internal/model"
	"github.com/lexiread/api/internal/srs"
	"github.com/lexiread/api/internal/store"
	"github.com/lexiread/api/internal/vocab"
)

type ReviewHandler struct {
	schedules store.ScheduleStore
	picker    *srs.Picker
	vocab     *vocab.Builder
}

func NewReviewHandler(schedules store.ScheduleStore, picker *srs.Picker, vocabBuilder *vocab.Builder) *ReviewHandler {
	return &ReviewHandler{
		schedules: schedules,
		picker:    picker,
		vocab:     vocabBuilder,
	}
}

type SubmitReviewRequest struct {
	Language string `json:"language" binding:"required"`
	Word     string `json:"word" binding:"required"`
	Rating   string `json:"rating" binding:"required"`
}

// Submit applies one review to the word's schedule, creating the row lazily
// on first review. Replaying a rating advances the schedule again; this is
// deliberate.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language, word and rating are required"})
		return
	}

	lang, err := language.Parse(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := srs.ParseRating(req.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	userID := c.GetInt64("userID")
	ctx := c.Request.Context()
	now := time.Now()

	schedule, err := h.schedules.GetSchedule(ctx, userID, lang, word)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[Review] Failed to load schedule: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
			return
		}
		state := srs.NewState()
		schedule = &model.WordSchedule{
			UserID:       userID,
			Language:     lang.Code(),
			Word:         word,
			Ease:         state.Ease,
			IntervalDays: state.IntervalDays,
			Status:       state.Status,
			CreatedAt:    now,
		}
	}

	result := srs.Apply(srs.State{
		Ease:         schedule.Ease,
		IntervalDays: schedule.IntervalDays,
		Repetitions:  schedule.Repetitions,
		Status:       schedule.Status,
	}, rating, now)

	schedule.Ease = result.State.Ease
	schedule.IntervalDays = result.State.IntervalDays
	schedule.Repetitions = result.State.Repetitions
	schedule.Status = result.State.Status
	schedule.DueAt = result.DueAt
	schedule.LastReviewedAt = &now
	schedule.UpdatedAt = now

	if err := h.schedules.UpsertSchedule(ctx, schedule); err != nil {
		log.Printf("[Review] Failed to save schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	// Secondary writes are best-effort: the review itself already stuck.
	go h.logReview(userID, lang, word, rating, schedule)
	h.vocab.Invalidate(ctx, userID, lang)

	c.JSON(http.StatusOK, schedule)
}

// Due returns the learner's current priority words for review.
func (h *ReviewHandler) Due(c *gin.Context) {
	lang, err := language.Parse(c.Query("language"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	userID := c.GetInt64("userID")

	words, err := h.picker.DuePriorityWords(c.Request.Context(), userID, lang, limit)
	if err != nil {
		log.Printf("[Review] Priority word selection failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load due words"})
		return
	}
	if words == nil {
		words = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"language": lang.Code(),
		"words":    words,
	})
}

func (h *ReviewHandler) logReview(userID int64, lang language.Language, word string, rating srs.Rating, schedule *model.WordSchedule) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := &model.ReviewLog{
		UserID:        userID,
		Language:      lang.Code(),
		Word:          word,
		Rating:        string(rating),
		EaseAfter:     schedule.Ease,
		IntervalAfter: schedule.IntervalDays,
		ReviewedAt:    time.Now(),
	}
	if err := h.schedules.InsertReviewLog(ctx, entry); err != nil {
		log.Printf("[Review] Failed to write review log: %v", err)
	}
}
