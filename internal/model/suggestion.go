package model

// Category is the activity category attached to a suggestion.
type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryFood        Category = "food"
	CategoryNightlife   Category = "nightlife"
	CategoryShopping    Category = "shopping"
	CategoryBazaar      Category = "bazaar"
	CategoryLandmark    Category = "landmark"
	CategoryMuseum      Category = "museum"
	CategoryRestaurant  Category = "restaurant"
	CategoryCafe        Category = "cafe"
	CategoryBar         Category = "bar"
	CategoryTransport   Category = "transport"
	CategoryOther       Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategorySightseeing, CategoryFood, CategoryNightlife, CategoryShopping,
	CategoryBazaar, CategoryLandmark, CategoryMuseum, CategoryRestaurant,
	CategoryCafe, CategoryBar, CategoryTransport, CategoryOther,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Source tags where a suggestion came from.
type Source string

const (
	SourceForum     Source = "forum"
	SourceWeb       Source = "web"
	SourcePreloaded Source = "preloaded"
)

// Location is a geographic coordinate with an optional address.
type Location struct {
	Lat     float64 `json:"lat" yaml:"lat"`
	Lng     float64 `json:"lng" yaml:"lng"`
	Address string  `json:"address,omitempty" yaml:"address,omitempty"`
}

// Suggestion is a normalized recommendation candidate.
type Suggestion struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description" yaml:"description"`
	Location     *Location `json:"location,omitempty" yaml:"location,omitempty"`
	Category     Category  `json:"category" yaml:"category"`
	Neighborhood string    `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
	Source       Source    `json:"source" yaml:"source"`
	SourceURL    string    `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Upvotes      int       `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`
	Comments     int       `json:"comments,omitempty" yaml:"comments,omitempty"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}
