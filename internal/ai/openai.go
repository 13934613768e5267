package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trip-suggester/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Briefer writes a short trip brief from a list of suggestions.
type Briefer interface {
	Brief(ctx context.Context, query string, items []model.Suggestion, language string) (string, error)
}

// OpenAIClient implements Briefer using the Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai: model must be specified")
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	return &OpenAIClient{client: c, model: cfg.Model}, nil
}

// Brief summarizes at most 15 suggestions into a few sentences.
func (o *OpenAIClient) Brief(ctx context.Context, query string, items []model.Suggestion, language string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	sys := fmt.Sprintf(`
		You are a local guide. Write in %s, 3 to 5 sentences (60–200 words).
		Group the places by neighborhood when you can and suggest an order to visit them.
		Only mention places from the list. Plain text, no links.
		`, langOrDefault(language))
	user := fmt.Sprintf("Traveler asked: %q\nCandidates (title, category, neighborhood):\n%s", query, bulletList(items, 15))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		slog.Error("openai: brief error", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func bulletList(items []model.Suggestion, max int) string {
	b := &strings.Builder{}
	for i, it := range items {
		if i >= max {
			break
		}
		hood := it.Neighborhood
		if hood == "" {
			hood = "-"
		}
		fmt.Fprintf(b, "- %s (%s, %s)\n", it.Title, it.Category, hood)
	}
	return b.String()
}

func langOrDefault(lang string) string {
	l := strings.TrimSpace(lang)
	if l == "" {
		return "English"
	}
	return l
}
