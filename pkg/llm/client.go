// Package llm classifies cybersecurity news items with an OpenAI-compatible model and falls back
// to deterministic keyword rules when the model is unavailable.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Completer sends a single system+user prompt pair and returns the model's text
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// ClientOpts configures the OpenAI-compatible client
type ClientOpts struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client implements Completer with go-openai
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient makes a client for any OpenAI-compatible chat completion endpoint
func NewClient(opts ClientOpts) *Client {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.Endpoint != "" {
		clientConfig.BaseURL = opts.Endpoint
	}
	if opts.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       opts.Model,
		temperature: float32(opts.Temperature),
	}
}

// Complete runs one chat completion and returns the first choice
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

// IsQuotaError reports whether err means the model service will keep refusing requests,
// i.e. quota exhaustion, rate limiting or rejected credentials
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && blockingStatus(apiErr.HTTPStatusCode) {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && blockingStatus(reqErr.HTTPStatusCode) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"quota", "429", "rate limit", "resource_exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func blockingStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusUnauthorized || code == http.StatusForbidden
}
