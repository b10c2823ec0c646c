// Package transport is the JSON-over-HTTP client shared by the model
// adapters. Every failure it returns is a *domain.SummarizationError.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4096

// Client sends requests to one provider's API.
type Client struct {
	name    string
	baseURL string
	header  http.Header
	http    *http.Client
}

// New creates a client. name prefixes error messages; header is sent with
// every request.
func New(name, baseURL string, timeout time.Duration, header http.Header) *Client {
	if header == nil {
		header = http.Header{}
	}
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		header:  header,
		http:    &http.Client{Timeout: timeout},
	}
}

// PostJSON sends in as JSON to path and decodes a 2xx body into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return c.fail(fmt.Errorf("marshal request: %w", err))
	}
	logger.Debug("%s: POST %s (%d bytes)", c.name, path, len(body))
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// Get requests path and discards the body. It is used for health checks.
func (c *Client) Get(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodGet, path, http.NoBody, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.fail(fmt.Errorf("create request: %w", err))
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &domain.SummarizationError{
			StatusCode: resp.StatusCode,
			StatusText: StatusText(resp, raw),
			Err:        fmt.Errorf("%s: %s", c.name, errorMessage(raw)),
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			se.RetryAfter = ratelimit.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(err error) error {
	return &domain.SummarizationError{Err: fmt.Errorf("%s: %w", c.name, err)}
}

// StatusText returns the reason phrase for a failed response. Codes net/http
// does not register fall back to the phrase the server sent, then to the
// message in body.
func StatusText(resp *http.Response, body []byte) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	_, phrase, _ := strings.Cut(resp.Status, " ")
	phrase = strings.TrimSpace(phrase)
	if phrase != "" && phrase != fmt.Sprintf("status code %d", resp.StatusCode) {
		return phrase
	}
	return errorMessage(body)
}

// errorMessage pulls the human-readable message out of the error shapes the
// supported providers use, falling back to the raw body.
func errorMessage(raw []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &flat) == nil {
		if flat.Error != "" {
			return flat.Error
		}
		if flat.Message != "" {
			return flat.Message
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "empty response body"
	}
	return msg
}
