// Package provider implements the host-side inference client the
// governance core routes to. The core itself never imports this
// package: its contract ends at producing a RoutingDecision, and
// resumes when the host hands output text back for watermarking.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ppiankov/neurorouter"
	openai "github.com/sashabaranov/go-openai"

	"github.com/truai/governor/internal/model"
)

// Client calls an OpenAI-compatible chat completion endpoint with the
// provider/model pair a RoutingDecision resolved to.
type Client struct {
	api *openai.Client
}

// New creates a client. baseURL may be empty for the default endpoint;
// Ollama, OpenRouter, and similar hosts take their usual /v1 URL.
func New(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Complete runs one inference call for a routed task and returns the
// completion text. Rate limiting is surfaced as
// neurorouter.ErrRateLimited so callers can defer and retry the way
// the daemon path does.
func (c *Client) Complete(ctx context.Context, decision model.RoutingDecision, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: decision.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("provider %s: %w", decision.Provider, neurorouter.ErrRateLimited)
		}
		return "", fmt.Errorf("provider %s (%s): %w", decision.Provider, decision.Model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider %s: empty completion", decision.Provider)
	}
	return resp.Choices[0].Message.Content, nil
}
