package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-suggester/internal/classify"
	"trip-suggester/internal/model"
	"trip-suggester/internal/textutil"
)

const maxTopics = 10

// Config configures the instant-answer client.
type Config struct {
	BaseURL string
	Prefix  string // prepended to every query, e.g. the city
	Suffix  string // appended to every query, e.g. the year
	Timeout time.Duration
}

// Client queries an instant-answer API and falls back to canned suggestions.
type Client struct {
	cfg        Config
	client     *http.Client
	classifier *classify.Classifier
}

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.duckduckgo.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		classifier: classify.Web(),
	}
}

type answer struct {
	Heading       string  `json:"Heading"`
	AbstractText  string  `json:"AbstractText"`
	AbstractURL   string  `json:"AbstractURL"`
	RelatedTopics []topic `json:"RelatedTopics"`
}

type topic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

func (c *Client) Name() model.Source { return model.SourceWeb }

// Search never comes back empty-handed when a fallback keyword matches: a
// failed call or an empty answer is replaced by Fallback(query).
func (c *Client) Search(ctx context.Context, query string) model.SourceResult {
	items, err := c.Lookup(ctx, query)
	if err != nil {
		slog.Error("websearch: lookup failed", "query", query, "error", err)
		return model.NewResult(model.SourceWeb, Fallback(query), err)
	}
	if len(items) == 0 {
		items = Fallback(query)
	}
	return model.NewResult(model.SourceWeb, items, nil)
}

// Lookup calls the API and maps the abstract and up to 10 related topics.
func (c *Client) Lookup(ctx context.Context, query string) ([]model.Suggestion, error) {
	q := url.Values{
		"q":             {c.qualify(query)},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("websearch: status %d", resp.StatusCode)
	}
	var a answer
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, fmt.Errorf("websearch: decode: %w", err)
	}

	var out []model.Suggestion
	if abstract := textutil.StripHTML(a.AbstractText); abstract != "" {
		title := a.Heading
		if title == "" {
			title = query
		}
		out = append(out, c.build("web-abstract-", title, abstract, a.AbstractURL))
	}
	topics := a.RelatedTopics
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	for _, t := range topics {
		text := textutil.StripHTML(t.Text)
		if text == "" {
			continue
		}
		title, _, _ := strings.Cut(text, " - ")
		if title == "" {
			title = textutil.Truncate(text, 50)
		}
		out = append(out, c.build("web-topic-", title, text, t.FirstURL))
	}
	return out, nil
}

func (c *Client) qualify(query string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.cfg.Prefix, query, c.cfg.Suffix} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (c *Client) build(prefix, title, text, link string) model.Suggestion {
	seed := link
	if seed == "" {
		seed = text
	}
	return model.Suggestion{
		ID:          prefix + uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String(),
		Title:       title,
		Description: text,
		Category:    c.classifier.Classify(text),
		Source:      model.SourceWeb,
		SourceURL:   link,
		Tags:        c.classifier.ExtractTags(text),
	}
}
