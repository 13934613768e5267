package forum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"trip-suggester/internal/classify"
	"trip-suggester/internal/model"
	"trip-suggester/internal/textutil"
)

const (
	pageLimit       = 25
	maxResults      = 30
	maxThreadReply  = 10
	minReplyLength  = 50
	minReplyUpvotes = 5
	descriptionMax  = 500
)

// Config configures the community forum client.
type Config struct {
	BaseURL   string // JSON API host, e.g. https://www.reddit.com
	LinkURL   string // host used for deep links
	Community string
	Thread    string // pinned Q&A thread id, optionally with its slug
	UserAgent string
	Timeout   time.Duration
}

// Client searches a single community and its pinned Q&A thread.
type Client struct {
	cfg        Config
	client     *http.Client
	classifier *classify.Classifier
}

// NewClient fills defaults for an Istanbul community client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if strings.TrimSpace(cfg.LinkURL) == "" {
		cfg.LinkURL = "https://reddit.com"
	}
	cfg.LinkURL = strings.TrimRight(cfg.LinkURL, "/")
	if cfg.Community == "" {
		cfg.Community = "istanbul"
	}
	if cfg.Thread == "" {
		cfg.Thread = "1oldiw4/visiting_istanbul_have_a_quick_question_ask_here"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "trip-suggester/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		classifier: classify.Forum(),
	}
}

// listing mirrors the subset of a listing response we read.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"`
	Body        string `json:"body"`
	Ups         int    `json:"ups"`
	NumComments int    `json:"num_comments"`
	Permalink   string `json:"permalink"`
}

// Name identifies the source.
func (c *Client) Name() model.Source { return model.SourceForum }

// Search returns ranked posts for query plus, for blank or advice-seeking
// queries, the strongest replies of the pinned Q&A thread. Errors are logged
// and reported in the result next to whatever was already collected.
func (c *Client) Search(ctx context.Context, query string) model.SourceResult {
	var out []model.Suggestion

	posts, err := c.Posts(ctx, query)
	if err != nil {
		slog.Error("forum: search failed", "query", query, "error", err)
		return model.NewResult(model.SourceForum, out, err)
	}
	out = append(out, posts...)

	if wantsThread(query) {
		replies, err := c.ThreadReplies(ctx)
		if err != nil {
			slog.Warn("forum: q&a thread fetch failed", "thread", c.cfg.Thread, "error", err)
		} else {
			out = append(out, replies...)
		}
	}
	slog.Debug("forum: search done", "query", query, "count", len(out))
	return model.NewResult(model.SourceForum, out, nil)
}

func wantsThread(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return q == "" || strings.Contains(q, "recommend") || strings.Contains(q, "suggest")
}

// Posts searches the community, or lists hot posts for a blank query, and
// returns them ranked by 2*upvotes+comments, capped at 30.
func (c *Client) Posts(ctx context.Context, query string) ([]model.Suggestion, error) {
	var endpoint string
	if strings.TrimSpace(query) == "" {
		endpoint = fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.cfg.BaseURL, url.PathEscape(c.cfg.Community), pageLimit)
	} else {
		q := url.Values{
			"q":     {query},
			"limit": {fmt.Sprint(pageLimit)},
			"sort":  {"relevance"},
			"t":     {"all"},
		}
		endpoint = fmt.Sprintf("%s/r/%s/search.json?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.Community), q.Encode())
	}
	var l listing
	if err := c.getJSON(ctx, endpoint, &l); err != nil {
		return nil, err
	}
	items := make([]model.Suggestion, 0, len(l.Data.Children))
	for _, ch := range l.Data.Children {
		items = append(items, c.convertPost(ch.Data))
	}
	return Rank(items, maxResults), nil
}

// ThreadReplies returns the high-signal replies of the pinned Q&A thread.
func (c *Client) ThreadReplies(ctx context.Context) ([]model.Suggestion, error) {
	endpoint := fmt.Sprintf("%s/r/%s/comments/%s.json", c.cfg.BaseURL, url.PathEscape(c.cfg.Community), c.cfg.Thread)
	var pages []listing
	if err := c.getJSON(ctx, endpoint, &pages); err != nil {
		return nil, err
	}
	if len(pages) < 2 || len(pages[0].Data.Children) == 0 {
		return nil, errors.New("forum: unexpected thread shape")
	}
	opening := pages[0].Data.Children[0].Data
	replies := pages[1].Data.Children
	if len(replies) > maxThreadReply {
		replies = replies[:maxThreadReply]
	}
	var out []model.Suggestion
	for _, ch := range replies {
		r := ch.Data
		body := textutil.StripHTML(r.Body)
		if len([]rune(body)) <= minReplyLength || r.Ups <= minReplyUpvotes {
			continue
		}
		text := classify.Join("", body)
		out = append(out, model.Suggestion{
			ID:           "forum-comment-" + r.ID,
			Title:        "From Q&A Thread: " + textutil.Truncate(body, 60) + "...",
			Description:  textutil.Truncate(body, descriptionMax),
			Category:     c.classifier.Classify(text),
			Neighborhood: c.classifier.Neighborhood(text),
			Source:       model.SourceForum,
			SourceURL:    c.cfg.LinkURL + opening.Permalink + "#" + r.ID,
			Upvotes:      r.Ups,
			Tags:         c.classifier.ExtractTags(text),
		})
	}
	return out, nil
}

func (c *Client) convertPost(p post) model.Suggestion {
	body := textutil.StripHTML(p.Selftext)
	desc := body
	if desc == "" {
		desc = p.Title
	}
	text := classify.Join(p.Title, body)
	return model.Suggestion{
		ID:           "forum-" + p.ID,
		Title:        p.Title,
		Description:  textutil.Truncate(desc, descriptionMax),
		Category:     c.classifier.Classify(text),
		Neighborhood: c.classifier.Neighborhood(text),
		Source:       model.SourceForum,
		SourceURL:    c.cfg.LinkURL + p.Permalink,
		Upvotes:      p.Ups,
		Comments:     p.NumComments,
		Tags:         c.classifier.ExtractTags(text),
	}
}

// Score is the popularity score used for ranking.
func Score(s model.Suggestion) int {
	return 2*s.Upvotes + s.Comments
}

// Rank sorts by Score descending, keeping input order on ties, and caps the list at limit.
func Rank(items []model.Suggestion, limit int) []model.Suggestion {
	sort.SliceStable(items, func(i, j int) bool {
		return Score(items[i]) > Score(items[j])
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("forum: %s status %d", req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("forum: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
