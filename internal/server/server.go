package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trip-suggester/internal/aggregate"
	"trip-suggester/internal/model"
)

// Suggester is the part of the aggregator the API needs.
type Suggester interface {
	Aggregate(ctx context.Context, query string) []model.Suggestion
	Detailed(ctx context.Context, query string) []model.SourceResult
	Recent(ctx context.Context) ([]string, error)
}

type Server struct {
	Suggester Suggester
}

type sourceStatus struct {
	Source string `json:"source"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached"`
	Count  int    `json:"count"`
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/suggestions", s.listSuggestions) // ?q=&category=&neighborhood=
	r.GET("/suggestions/sources", s.listSources)
	r.GET("/queries/recent", s.recentQueries)
	return r
}

func (s *Server) listSuggestions(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	category := c.Query("category")
	if category != "" && !strings.EqualFold(category, "all") && !model.Category(strings.ToLower(category)).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + category})
		return
	}
	items := s.Suggester.Aggregate(c.Request.Context(), q)
	items = aggregate.Filter(items, category, c.Query("neighborhood"))
	if items == nil {
		items = []model.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{
		"query": q,
		"total": len(items),
		"data":  items,
	})
}

func (s *Server) listSources(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	results := s.Suggester.Detailed(c.Request.Context(), q)
	out := make([]sourceStatus, 0, len(results))
	for _, r := range results {
		out = append(out, sourceStatus{
			Source: string(r.Source),
			Status: string(r.Status),
			Error:  r.Reason(),
			Cached: r.Cached,
			Count:  len(r.Suggestions),
		})
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "data": out})
}

func (s *Server) recentQueries(c *gin.Context) {
	qs, err := s.Suggester.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if qs == nil {
		qs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": qs})
}
