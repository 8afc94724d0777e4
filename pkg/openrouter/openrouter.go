// Package openrouter is a thin chat-completion client over the OpenAI SDK,
// pointed at OpenRouter. The API key is injected per call so the caller can
// rotate credentials without rebuilding the client.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKeys     []string      `envconfig:"API_KEYS" split_words:"true" required:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"openai/gpt-4o-mini"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	MaxTokens   int64         `envconfig:"MAX_TOKENS" split_words:"true" default:"1024"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL     string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName    string        `envconfig:"SITE_NAME" split_words:"true"`
}

// Client implements the primary text-generation upstream.
type Client struct {
	sdk   openaisdk.Client
	model string
	temp  float64
	max   int64
}

var _ contractx.PrimaryProvider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("openrouter: model is required")
	}

	opts := []option.RequestOption{}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	return &Client{
		sdk:   openaisdk.NewClient(opts...),
		model: model,
		temp:  cfg.Temperature,
		max:   cfg.MaxTokens,
	}, nil
}

// Complete sends one chat completion with the given secret as the API key.
func (c *Client) Complete(ctx context.Context, secret, prompt string, history []contractx.ConversationMessage) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", errors.New("openrouter: empty api key")
	}

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case contractx.RoleAgent:
			messages = append(messages, openaisdk.AssistantMessage(msg.Text))
		default:
			messages = append(messages, openaisdk.UserMessage(msg.Text))
		}
	}
	messages = append(messages, openaisdk.UserMessage(prompt))

	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.model),
		Messages:    messages,
		Temperature: openaisdk.Float(c.temp),
		MaxTokens:   openaisdk.Int(c.max),
	}, option.WithAPIKey(secret))
	if err != nil {
		return "", fmt.Errorf("openrouter: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openrouter: no choices in response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openrouter: empty completion")
	}
	return text, nil
}
