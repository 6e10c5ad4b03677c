package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RateLimiter asks the external rate-limiter service whether a client may
// perform an action (e.g. its daily generation quota).
type RateLimiter struct {
	baseURL    string
	httpClient *http.Client
}

func NewRateLimiter(baseURL string) *RateLimiter {
	return &RateLimiter{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

type checkRequest struct {
	ClientID string `json:"client_id"`
	Action   string `json:"action"`
}

// CheckResult mirrors the limiter service's response.
type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

// Check returns whether the action is allowed for the user. Callers fail
// open on error; quota enforcement is best-effort by design.
func (c *RateLimiter) Check(ctx context.Context, userID int64, action string) (*CheckResult, error) {
	reqBody, err := json.Marshal(checkRequest{
		ClientID: strconv.FormatInt(userID, 10),
		Action:   action,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call rate limiter: %w", err)
	}
	defer resp.Body.Close()

	// The limiter answers 200 when allowed and 429 when not; both carry the
	// same body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limiter returned status %d", resp.StatusCode)
	}

	var result CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode rate limiter response: %w", err)
	}

	return &result, nil
}
