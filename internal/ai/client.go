// Package ai provides the HTTP client for the external text and image
// generation gateway (an OpenAI-compatible chat completions API).
package ai

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

const (
	defaultBaseURL    = "https://ai.gateway.lovable.dev/v1"
	defaultModel      = "google/gemini-2.5-flash"
	defaultImageModel = "google/gemini-2.5-flash-image-preview"
	defaultTimeout    = 90 * time.Second
)

var (
	// ErrNotConfigured means the gateway credential is absent.
	ErrNotConfigured = errors.New("ai service not configured")
	// ErrRateLimited means the gateway reported a throttling status.
	ErrRateLimited = errors.New("ai rate limited")
	// ErrQuotaExhausted means the gateway reported billing/credit exhaustion.
	ErrQuotaExhausted = errors.New("ai quota exhausted")
	// ErrUpstream covers any other gateway failure, including a response
	// without a completion body.
	ErrUpstream = errors.New("ai upstream error")
)

// StatusError carries the gateway HTTP status. It unwraps to the matching
// sentinel so callers can branch with errors.Is.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusPaymentRequired:
		return ErrQuotaExhausted
	default:
		return ErrUpstream
	}
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to a gateway completion.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Modalities  []string  `json:"modalities,omitempty"`
}

// CompletionResponse is the output of a gateway completion. Images holds any
// data URLs returned alongside the text when image modality was requested.
type CompletionResponse struct {
	Content string
	Images  []string
	Model   string
}

// Completer is the interface the lesson pipeline depends on; *Client is the
// production implementation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// Client calls the generation gateway. Failures are terminal for the current
// request; there is no automatic retry.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	imageModel string
	client     *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the gateway base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithModel sets the text generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithImageModel sets the image generation model.
func WithImageModel(model string) Option {
	return func(c *Client) {
		c.imageModel = model
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a gateway client. An empty apiKey is allowed at
// construction; calls will fail with ErrNotConfigured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		imageModel: defaultImageModel,
		client:     http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured text generation model.
func (c *Client) Model() string { return c.model }

// ImageModel returns the configured image generation model.
func (c *Client) ImageModel() string { return c.imageModel }

// Configured reports whether a gateway credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	Modalities  []string      `json:"modalities,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
}

func (c *Client) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if c.apiKey == "" {
		return CompletionResponse{}, ErrNotConfigured
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := make([]chatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = chatMessage(m)
	}

	gwReq := chatRequest{
		Model:      model,
		Messages:   messages,
		Modalities: req.Modalities,
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		gwReq.Temperature = &temp
	}

	body, err := json.Marshal(gwReq)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return CompletionResponse{}, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gwResp chatResponse
	if err := json.Unmarshal(respBody, &gwResp); err != nil {
		return CompletionResponse{}, fmt.Errorf("%w: unmarshal response: %v", ErrUpstream, err)
	}

	if len(gwResp.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("%w: no completion in response", ErrUpstream)
	}

	msg := gwResp.Choices[0].Message
	out := CompletionResponse{
		Content: msg.Content,
		Model:   gwResp.Model,
	}
	for _, img := range msg.Images {
		if img.ImageURL.URL != "" {
			out.Images = append(out.Images, img.ImageURL.URL)
		}
	}

	return out, nil
}
