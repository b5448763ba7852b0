// Atelier - AI-Powered Artwork Discovery and Learning
// Copyright 2026 Atelier Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atelierhq/atelier

package museum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/metrics"
)

const maxErrorBodySize = 64 * 1024 // 64KB cap on error response bodies

// readBodyForError reads a bounded amount of the response body for inclusion
// in error messages.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return fmt.Sprintf("<failed to read body: %v>", err)
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "... (truncated)"
	}
	return string(body)
}

// metTag is a subject keyword attached to a collection object.
type metTag struct {
	Term string `json:"term"`
}

// metObject is the collection API object detail payload, reduced to the
// fields the lookup pipeline reads.
type metObject struct {
	ObjectID          int      `json:"objectID"`
	Title             string   `json:"title"`
	ArtistDisplayName string   `json:"artistDisplayName"`
	ObjectDate        string   `json:"objectDate"`
	PrimaryImage      string   `json:"primaryImage"`
	PrimaryImageSmall string   `json:"primaryImageSmall"`
	ObjectURL         string   `json:"objectURL"`
	Department        string   `json:"department"`
	Medium            string   `json:"medium"`
	Culture           string   `json:"culture"`
	Classification    string   `json:"classification"`
	Tags              []metTag `json:"tags"`
}

// searchResponse is the collection API search payload.
type searchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// Client is a Metropolitan Museum of Art Collection API client. The API is
// public and unauthenticated; per-call deadlines come from configuration.
type Client struct {
	client  *http.Client
	baseURL string

	objectTimeout  time.Duration
	searchTimeout  time.Duration
	relatedTimeout time.Duration
}

// NewClient creates a collection API client from configuration.
func NewClient(cfg *config.MuseumConfig) *Client {
	return &Client{
		client:         &http.Client{},
		baseURL:        cfg.BaseURL,
		objectTimeout:  cfg.ObjectTimeout,
		searchTimeout:  cfg.SearchTimeout,
		relatedTimeout: cfg.RelatedTimeout,
	}
}

// Search returns candidate object IDs for a free-text query. When
// artistOrCulture is set the query matches artist and culture fields, which
// the collection API weights far better for artist name searches. Related
// searches get a longer deadline because they fan out into more detail
// fetches afterwards.
func (c *Client) Search(ctx context.Context, query string, artistOrCulture, related bool) ([]int, error) {
	timeout := c.searchTimeout
	operation := "search"
	if related {
		timeout = c.relatedTimeout
		operation = "search_related"
	}

	params := url.Values{}
	params.Set("q", query)
	if artistOrCulture {
		params.Set("artistOrCulture", "true")
	}

	var result searchResponse
	if err := c.makeRequest(ctx, operation, "/search?"+params.Encode(), timeout, &result); err != nil {
		return nil, err
	}
	return result.ObjectIDs, nil
}

// Object fetches the detail record for a single collection object.
func (c *Client) Object(ctx context.Context, objectID int) (*metObject, error) {
	var result metObject
	path := fmt.Sprintf("/objects/%d", objectID)
	if err := c.makeRequest(ctx, "object", path, c.objectTimeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// makeRequest performs a GET against the collection API and decodes the JSON
// response into result.
func (c *Client) makeRequest(ctx context.Context, operation, path string, timeout time.Duration, result interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordMuseumRequest(operation, status, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		status = "error"
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		status = "error"
		return fmt.Errorf("museum request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		status = fmt.Sprintf("http_%d", resp.StatusCode)
		body := readBodyForError(resp.Body)
		return fmt.Errorf("museum API returned status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		status = "decode_error"
		return fmt.Errorf("failed to decode museum response: %w", err)
	}
	return nil
}
