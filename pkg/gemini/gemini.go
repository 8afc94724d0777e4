// Package gemini wraps the google.golang.org/genai SDK as the secondary
// text-generation upstream.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
)

const defaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey    string        `envconfig:"API_KEY" split_words:"true"`
	Model     string        `envconfig:"MODEL" split_words:"true" default:"gemini-2.0-flash"`
	MaxTokens int32         `envconfig:"MAX_TOKENS" split_words:"true" default:"1024"`
	Timeout   time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Client implements the secondary text-generation upstream.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

var _ contractx.SecondaryProvider = (*Client)(nil)

func New(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{client: gc, model: model, maxTokens: maxTokens}, nil
}

// Complete sends the conversation plus the prompt as a single generate call.
func (c *Client) Complete(ctx context.Context, prompt string, history []contractx.ConversationMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == contractx.RoleAgent {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	})

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini: empty completion")
	}
	return text, nil
}
