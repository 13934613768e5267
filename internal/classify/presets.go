package classify

import "trip-suggester/internal/model"

var foodWords = []string{"food", "restaurant", "eat", "dining", "kebab", "doner", "breakfast", "dinner", "lunch", "cafe", "coffee", "tea"}

var nightlifeWords = []string{"nightlife", "bar", "club", "drink", "party", "night"}

var museumWords = []string{"museum", "gallery", "art", "exhibition", "history"}

var marketWords = []string{"bazaar", "market", "shopping", "shop", "mall"}

var landmarkWords = []string{"mosque", "palace", "landmark", "attraction", "sightseeing"}

// neighborhoods is the shared gazetteer of Istanbul districts.
var neighborhoods = []string{
	"kadikoy", "moda", "balat", "sultanahmet", "galata", "beyoglu",
	"cihangir", "nisantasi", "eminonu", "ortakoy", "bebek", "tarabya",
}

// Places maps gazetteer fragments to display labels, in lookup order.
var Places = []Place{
	{"kadikoy", "Kadıköy"},
	{"moda", "Moda"},
	{"balat", "Balat"},
	{"sultanahmet", "Sultanahmet"},
	{"galata", "Galata"},
	{"beyoglu", "Beyoglu"},
	{"cihangir", "Cihangir"},
	{"nisantasi", "Nisantasi"},
	{"eminonu", "Eminonu"},
	{"ortakoy", "Ortakoy"},
	{"bebek", "Bebek"},
	{"tarabya", "Tarabya"},
	{"uskudar", "Üsküdar"},
	{"kuzguncuk", "Kuzguncuk"},
	{"besiktas", "Beşiktaş"},
	{"fatih", "Fatih"},
}

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Forum classifies community posts. Market terms map to shopping.
func Forum() *Classifier {
	return &Classifier{
		Rules: []Rule{
			NewRule(model.CategoryFood, foodWords...),
			NewRule(model.CategoryNightlife, nightlifeWords...),
			NewRule(model.CategoryMuseum, museumWords...),
			NewRule(model.CategoryShopping, marketWords...),
			NewRule(model.CategoryLandmark, with(landmarkWords, "tourist")...),
		},
		Fallback: model.CategorySightseeing,
		Tags:     neighborhoods,
		Places:   Places,
	}
}

// Web classifies instant-answer text. Market terms map to bazaar, and the
// keyword sets carry a few extra well-known names.
func Web() *Classifier {
	return &Classifier{
		Rules: []Rule{
			NewRule(model.CategoryFood, with(foodWords, "baklava", "simit")...),
			NewRule(model.CategoryNightlife, nightlifeWords...),
			NewRule(model.CategoryMuseum, with(museumWords, "modern")...),
			NewRule(model.CategoryBazaar, with(marketWords, "grand bazaar", "spice bazaar")...),
			NewRule(model.CategoryLandmark, with(landmarkWords, "hagia sophia", "topkapi", "blue mosque")...),
		},
		Fallback: model.CategorySightseeing,
		Tags:     with(neighborhoods, "asian side"),
		Places:   Places,
	}
}
