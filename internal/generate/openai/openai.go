// Package openai implements generate.Generator with a chat completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/generate"
	"github.com/wahlandcase/attuned.changelog/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// Generator calls a chat completion endpoint
type Generator struct {
	apiKey string
	model  string
	client *openai.Client
}

// New creates a generator. An empty baseURL uses the provider default.
func New(apiKey, baseURL, model string) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &Generator{apiKey: apiKey, model: model, client: openai.NewClientWithConfig(cfg)}
}

// Generate sends prompt as a single user message and parses the reply
func (g *Generator) Generate(ctx context.Context, prompt string) (models.Draft, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return models.Draft{}, generate.ErrMissingCredential
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	slog.Debug("generate changelog", slog.String("model", g.model), slog.Int("prompt_bytes", len(prompt)), slog.Duration("took", time.Since(start)))
	if err != nil {
		if rejected(err) {
			return models.Draft{}, fmt.Errorf("%w: %v", generate.ErrCredentialRejected, err)
		}
		return models.Draft{}, fmt.Errorf("generate changelog: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return models.Draft{}, generate.ErrEmptyResponse
	}
	return generate.ParseDraft(resp.Choices[0].Message.Content), nil
}

func rejected(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden
	}
	return false
}
