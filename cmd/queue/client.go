package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gigurra/karaoke/cmd/serve/catalog"
)

// APIError is an error reported by the karaoke server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Client talks to a running karaoke server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultServer
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) Songs(ctx context.Context) ([]catalog.Song, error) {
	var songs []catalog.Song
	err := c.do(ctx, http.MethodGet, "/api/songs", nil, &songs)
	return songs, err
}

// Queue returns the queued entries with all their fields.
func (c *Client) Queue(ctx context.Context) ([]map[string]any, error) {
	var entries []map[string]any
	err := c.do(ctx, http.MethodGet, "/api/queue", nil, &entries)
	return entries, err
}

func (c *Client) Add(ctx context.Context, song any) (string, error) {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/api/queue/add", song, &resp)
	return resp.Message, err
}

func (c *Client) Remove(ctx context.Context, index int) (string, error) {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/api/queue/remove", map[string]int{"index": index}, &resp)
	return resp.Message, err
}

// PlayNext pops the head of the queue and returns it.
func (c *Client) PlayNext(ctx context.Context) (map[string]any, error) {
	var entry map[string]any
	err := c.do(ctx, http.MethodPost, "/api/queue/play", nil, &entry)
	return entry, err
}

func (c *Client) Clear(ctx context.Context) (string, error) {
	var resp statusResponse
	err := c.do(ctx, http.MethodDelete, "/api/queue", nil, &resp)
	return resp.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var status statusResponse
		if json.Unmarshal(data, &status) != nil || status.Message == "" {
			status.Message = strings.TrimSpace(string(data))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: status.Message}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
