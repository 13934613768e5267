package aggregate

import (
	"strings"

	"trip-suggester/internal/model"
)

// Filter keeps suggestions matching category and neighborhood. Empty or "all"
// disables a criterion; neighborhood comparison ignores case.
func Filter(items []model.Suggestion, category, neighborhood string) []model.Suggestion {
	category = strings.ToLower(strings.TrimSpace(category))
	neighborhood = strings.TrimSpace(neighborhood)
	if category == "all" {
		category = ""
	}
	if strings.EqualFold(neighborhood, "all") {
		neighborhood = ""
	}
	out := make([]model.Suggestion, 0, len(items))
	for _, s := range items {
		if category != "" && string(s.Category) != category {
			continue
		}
		if neighborhood != "" && !strings.EqualFold(s.Neighborhood, neighborhood) {
			continue
		}
		out = append(out, s)
	}
	return out
}
