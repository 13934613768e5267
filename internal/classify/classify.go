package classify

import (
	"regexp"
	"strings"

	"trip-suggester/internal/model"
)

// Rule maps a keyword set to a category. Keywords match whole words, case-insensitively.
type Rule struct {
	Category model.Category
	re       *regexp.Regexp
}

// NewRule compiles keywords into a word-boundary alternation.
func NewRule(cat model.Category, keywords ...string) Rule {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(k)))
	}
	return Rule{
		Category: cat,
		re:       regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Match reports whether text contains any of the rule's keywords.
func (r Rule) Match(text string) bool {
	return r.re != nil && r.re.MatchString(text)
}

// Place is a gazetteer entry: a lower-case fragment and its display label.
type Place struct {
	Fragment string
	Label    string
}

// Classifier categorizes free text and extracts neighborhood tags.
type Classifier struct {
	Rules    []Rule
	Fallback model.Category
	Tags     []string // lower-case fragments reported as tags
	Places   []Place  // ordered; first contained fragment names the neighborhood
}

// Classify returns the category of the first matching rule, or the fallback.
func (c *Classifier) Classify(text string) model.Category {
	for _, r := range c.Rules {
		if r.Match(text) {
			return r.Category
		}
	}
	if c.Fallback == "" {
		return model.CategorySightseeing
	}
	return c.Fallback
}

// ExtractTags returns every gazetteer fragment contained in text, without duplicates.
func (c *Classifier) ExtractTags(text string) []string {
	content := strings.ToLower(text)
	seen := make(map[string]struct{}, len(c.Tags))
	var tags []string
	for _, t := range c.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		if strings.Contains(content, t) {
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// Neighborhood returns the label of the first place mentioned in text, or "".
func (c *Classifier) Neighborhood(text string) string {
	content := strings.ToLower(text)
	for _, p := range c.Places {
		if strings.Contains(content, p.Fragment) {
			return p.Label
		}
	}
	return ""
}

// Join concatenates title and body the way both adapters feed the classifier.
func Join(title, body string) string {
	return title + " " + body
}
