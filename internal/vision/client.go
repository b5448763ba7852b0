// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package vision

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/metrics"
)

// maxErrorBodySize limits the maximum amount of response body read for
// error reporting to prevent unbounded memory allocation.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Message is a single chat message. Content is a string for text-only
// messages or a []ContentPart for vision messages carrying an image.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries a data URL or remote URL for a vision request.
type ImageURL struct {
	URL string `json:"url"`
}

// CompletionRequest is one chat completion call.
type CompletionRequest struct {
	Operation   string // metric label: "recognize", "describe", "chat", ...
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Completer is the chat completion surface the recognition gate and
// content generators depend on. Stub implementations back the tests.
type Completer interface {
	// Complete returns the assistant message content for the request.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Enabled reports whether an API key is configured. When false the
	// generators skip the AI path entirely.
	Enabled() bool
}

// Client is an HTTP client for an OpenAI-compatible chat completions API.
type Client struct {
	client         *http.Client
	baseURL        string
	apiKey         string
	model          string
	maxTokens      int
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a vision API client from configuration.
func NewClient(cfg *config.VisionConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		maxRetries:     5,
		retryBaseDelay: time.Second,
	}
}

// Enabled reports whether the client has an API key configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// chatRequest is the wire format of a chat completions call.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// chatResponse is the wire format of a chat completions response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete performs one chat completion call and returns the assistant
// message content.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	start := time.Now()
	content, err := c.complete(ctx, req)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordVisionRequest(req.Operation, status, time.Since(start))

	return content, err
}

func (c *Client) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("vision API key not configured")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	payload := chatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	resp, err := c.doRequestWithRateLimit(ctx, body)
	if err != nil {
		return "", fmt.Errorf("failed to make %s request: %w", req.Operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody := readBodyForError(resp.Body)
		return "", fmt.Errorf("%s request failed with status %d: %s", req.Operation, resp.StatusCode, string(errBody))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", req.Operation, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("%s request rejected: %s", req.Operation, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%s response contained no choices", req.Operation)
	}

	return parsed.Choices[0].Message.Content, nil
}

// doRequestWithRateLimit performs the HTTP request with automatic HTTP 429
// handling: exponential backoff (1s, 2s, 4s, 8s, 16s) honoring Retry-After.
func (c *Client) doRequestWithRateLimit(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Honor Retry-After (RFC 6585) when present
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}
