// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kestrelworks/parley/internal/config"
)

// Configuration constants for the generation endpoint.
const (
	// DefaultTimeout is the default timeout for generation requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxNewTokens caps the length of a generated reply.
	DefaultMaxNewTokens = 200

	// DefaultTemperature is the default sampling temperature.
	DefaultTemperature = 0.7

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB limit
)

// Canned reply content for degraded paths. These are message bodies, not
// errors: the client stays usable when generation comes back empty.
const (
	// FallbackNoReply is used when the endpoint answers without any
	// generated text.
	FallbackNoReply = "Sorry, I couldn't generate a response."

	// FallbackEmptyReply is used when stripping the prompt echo leaves
	// nothing behind.
	FallbackEmptyReply = "Sorry, I couldn't generate a meaningful response."

	// MsgNotConfigured is appended to the chat when a reply is requested
	// while the endpoint or token is missing.
	MsgNotConfigured = "AI service not configured."
)

// ErrNotConfigured indicates the endpoint URL or API token is not set.
var ErrNotConfigured = errors.New("AI service not configured")

// RemoteError represents an error response from the generation endpoint.
type RemoteError struct {
	Status  int
	Message string

	// parsed is true when Message is the endpoint's own error description
	// (an error/detail field) rather than the raw body or status line.
	parsed bool
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("generation failed (HTTP %d): %s", e.Status, e.Message)
}

// generateRequest is the wire format of a generation call.
type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	DoSample     bool    `json:"do_sample"`
}

// generateResult is one candidate in the endpoint's response array.
type generateResult struct {
	GeneratedText string `json:"generated_text"`
}

// apiErrorResponse covers the two error body shapes the endpoint produces.
type apiErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Client is a client for a Hugging Face style text-generation endpoint.
type Client struct {
	endpoint     string
	token        string
	httpClient   *http.Client
	limiter      *rate.Limiter
	maxNewTokens int
	temperature  float64
}

// NewClient creates a client from the assistant configuration. An empty
// endpoint or token still yields a usable client; Generate then fails with
// ErrNotConfigured.
func NewClient(cfg config.AssistantConfig) *Client {
	maxTokens := cfg.MaxNewTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxNewTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	return &Client{
		endpoint:     strings.TrimSpace(cfg.Endpoint),
		token:        strings.TrimSpace(cfg.Token),
		httpClient:   &http.Client{Timeout: timeout},
		limiter:      limiter,
		maxNewTokens: maxTokens,
		temperature:  temperature,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Configured reports whether both the endpoint and the token are set.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.token != ""
}

// Generate sends the prompt to the endpoint and returns the raw generated
// text, prompt echo included. Callers strip the echo with CleanReply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	reqBody := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: c.maxNewTokens,
			Temperature:  c.temperature,
			DoSample:     true,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorFromResponse(resp, body)
	}

	var results []generateResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return FallbackNoReply, nil
	}
	return results[0].GeneratedText, nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// errorFromResponse converts a non-200 response to a RemoteError, preferring
// the endpoint's own error description when the body carries one.
func errorFromResponse(resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	parsed := false

	var apiErr apiErrorResponse
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Error != "" {
			msg = apiErr.Error
			parsed = true
		} else if apiErr.Detail != "" {
			msg = apiErr.Detail
			parsed = true
		}
	}
	if msg == "" {
		msg = resp.Status
	}

	return &RemoteError{Status: resp.StatusCode, Message: msg, parsed: parsed}
}

// =============================================================================
// PROMPT ASSEMBLY
// =============================================================================

// BuildPrompt assembles the generation prompt from the chat's persona and the
// user's message. The persona, when present, leads the prompt separated by a
// blank line.
func BuildPrompt(persona, content string) string {
	var b strings.Builder
	if persona != "" {
		b.WriteString(persona)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(content)
	b.WriteString("\nAI:")
	return b.String()
}

// CleanReply strips the echoed prompt from the raw generation and trims
// whitespace. Endpoints that echo the input produce replies of the form
// prompt+continuation; only the first occurrence is removed so a reply that
// happens to quote the prompt stays intact.
func CleanReply(raw, prompt string) string {
	cleaned := strings.TrimSpace(strings.Replace(raw, prompt, "", 1))
	if cleaned == "" {
		return FallbackEmptyReply
	}
	return cleaned
}
