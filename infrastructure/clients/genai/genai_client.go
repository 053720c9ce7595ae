package genai

import (
	"context"
	"fmt"

	"comment-insights/domain/repository"

	openai "github.com/sashabaranov/go-openai"
)

// Client is a thin text-in/text-out wrapper over any OpenAI-compatible chat
// completion endpoint. Prompt construction and response parsing live with
// the callers.
type Client struct {
	client *openai.Client
	model  string
}

// Config represents generative-AI provider configuration
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewGenAIClient(cfg *Config) (repository.IGenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts repository.GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
