package preload

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"trip-suggester/internal/model"
)

//go:embed istanbul.yaml
var istanbulYAML []byte

// Parse decodes a YAML list of suggestions and tags each as preloaded.
func Parse(b []byte) ([]model.Suggestion, error) {
	var items []model.Suggestion
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("preload: %w", err)
	}
	for i := range items {
		items[i].Source = model.SourcePreloaded
		if !items[i].Category.Valid() {
			return nil, fmt.Errorf("preload: %s: unknown category %q", items[i].ID, items[i].Category)
		}
	}
	return items, nil
}

// Istanbul returns the curated suggestion set shown before any search.
func Istanbul() []model.Suggestion {
	items, err := Parse(istanbulYAML)
	if err != nil {
		panic(err)
	}
	return items
}
