package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-suggester/internal/model"
)

const answerBody = `{
 "Heading":"Grand Bazaar",
 "AbstractText":"The Grand Bazaar in Istanbul is one of the largest covered markets.",
 "AbstractURL":"https://en.wikipedia.org/wiki/Grand_Bazaar",
 "RelatedTopics":[
  {"Text":"Spice Bazaar - A market in Eminonu","FirstURL":"https://duckduckgo.com/Spice_Bazaar"},
  {"Name":"See also","Topics":[]},
  {"Text":"Kadikoy Market - Food stalls on the Asian side","FirstURL":"https://duckduckgo.com/Kadikoy_Market"}
 ]}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Prefix: "Istanbul", Suffix: "2025"})
}

func TestSearchMapsAbstractAndTopics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Istanbul bazaar 2025", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "1", q.Get("no_html"))
		assert.Equal(t, "1", q.Get("skip_disambig"))
		fmt.Fprint(w, answerBody)
	})

	res := c.Search(context.Background(), "bazaar")
	require.NoError(t, res.Err)
	require.Len(t, res.Suggestions, 3)

	abstract := res.Suggestions[0]
	assert.True(t, strings.HasPrefix(abstract.ID, "web-abstract-"))
	assert.Equal(t, "Grand Bazaar", abstract.Title)
	assert.Equal(t, model.CategoryBazaar, abstract.Category)
	assert.Equal(t, model.SourceWeb, abstract.Source)

	spice := res.Suggestions[1]
	assert.True(t, strings.HasPrefix(spice.ID, "web-topic-"))
	assert.Equal(t, "Spice Bazaar", spice.Title)
	assert.Equal(t, []string{"eminonu"}, spice.Tags)

	kadikoy := res.Suggestions[2]
	assert.Equal(t, model.CategoryFood, kadikoy.Category)
	assert.ElementsMatch(t, []string{"kadikoy", "asian side"}, kadikoy.Tags)
}

func TestSearchIDsAreStable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, answerBody)
	})
	a := c.Search(context.Background(), "bazaar")
	b := c.Search(context.Background(), "bazaar")
	require.Len(t, b.Suggestions, len(a.Suggestions))
	for i := range a.Suggestions {
		assert.Equal(t, a.Suggestions[i].ID, b.Suggestions[i].ID)
	}
	assert.NotEqual(t, a.Suggestions[1].ID, a.Suggestions[2].ID)
}

func TestSearchCapsTopics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var topics []string
		for i := 0; i < 15; i++ {
			topics = append(topics, fmt.Sprintf(`{"Text":"Topic %d","FirstURL":"https://x/%d"}`, i, i))
		}
		fmt.Fprintf(w, `{"RelatedTopics":[%s]}`, strings.Join(topics, ","))
	})
	res := c.Search(context.Background(), "anything")
	assert.Len(t, res.Suggestions, 10)
}

func TestSearchEmptyAnswerFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	res := c.Search(context.Background(), "street food and a bar")
	require.NoError(t, res.Err)
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, model.CategoryFood, res.Suggestions[0].Category)
	assert.Equal(t, model.CategoryNightlife, res.Suggestions[1].Category)
	assert.Equal(t, model.SourceWeb, res.Suggestions[0].Source)
}

func TestSearchFailureFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	res := c.Search(context.Background(), "grand bazaar")
	assert.Error(t, res.Err)
	assert.Equal(t, model.StatusFailed, res.Status)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "web-fallback-bazaar", res.Suggestions[0].ID)
}

func TestSearchNothingMatches(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	res := c.Search(context.Background(), "ferry schedule")
	assert.NoError(t, res.Err)
	assert.Equal(t, model.StatusEmpty, res.Status)
	assert.Empty(t, res.Suggestions)
}
