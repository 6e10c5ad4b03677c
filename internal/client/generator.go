package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrGeneratorTimeout distinguishes a timed-out generator call from other
// failures; the orchestrator treats it as retryable.
var ErrGeneratorTimeout = errors.New("generator timeout")

// Generator calls the LLM proxy sidecar that fronts the actual model.
type Generator struct {
	baseURL    string
	httpClient *http.Client
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Per-call deadlines come from the request context; this is a
			// hard upper bound.
			Timeout: 120 * time.Second,
		},
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	System      string  `json:"system,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateText sends one prompt to the proxy and returns the raw completion.
func (c *Generator) GenerateText(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Prompt:      prompt,
		System:      system,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrGeneratorTimeout, err)
		}
		return "", fmt.Errorf("failed to call generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generator returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generator response: %w", err)
	}

	return genResp.Text, nil
}
