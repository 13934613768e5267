package websearch

import (
	"strings"

	"trip-suggester/internal/model"
)

type canned struct {
	keywords   []string
	suggestion model.Suggestion
}

var fallbacks = []canned{
	{
		keywords: []string{"food", "restaurant", "eat"},
		suggestion: model.Suggestion{
			ID:          "web-fallback-food",
			Title:       "Local Turkish Cuisine",
			Description: "Explore authentic Turkish restaurants and street food in Istanbul",
			Category:    model.CategoryFood,
			Tags:        []string{"food", "restaurant"},
		},
	},
	{
		keywords: []string{"bazaar", "market"},
		suggestion: model.Suggestion{
			ID:          "web-fallback-bazaar",
			Title:       "Grand Bazaar & Spice Bazaar",
			Description: "Visit the historic markets for shopping and local products",
			Category:    model.CategoryBazaar,
			Tags:        []string{"bazaar", "shopping"},
		},
	},
	{
		keywords: []string{"nightlife", "bar"},
		suggestion: model.Suggestion{
			ID:          "web-fallback-nightlife",
			Title:       "Istanbul Nightlife",
			Description: "Experience bars and nightlife in Beyoglu and Kadikoy",
			Category:    model.CategoryNightlife,
			Tags:        []string{"nightlife", "bar"},
		},
	},
}

// Fallback emits one generic suggestion per keyword group found in query.
// Matching is plain substring containment, so "barbecue" counts as "bar".
func Fallback(query string) []model.Suggestion {
	q := strings.ToLower(query)
	var out []model.Suggestion
	for _, f := range fallbacks {
		for _, k := range f.keywords {
			if strings.Contains(q, k) {
				s := f.suggestion
				s.Source = model.SourceWeb
				s.Tags = append([]string(nil), f.suggestion.Tags...)
				out = append(out, s)
				break
			}
		}
	}
	return out
}
