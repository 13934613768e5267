package report

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"trip-suggester/internal/model"
)

type Item struct {
	Title        string
	URL          string
	Description  string
	Category     string
	Neighborhood string
	Source       string
	Upvotes      int
	Comments     int
	Tags         []string
}

type Data struct {
	Title    string
	Query    string
	Datetime string
	Brief    string
	Items    []Item
}

//go:embed report.tmpl
var reportTpl string

var compiled = template.Must(template.New("report").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(reportTpl))

// Render writes the suggestions as Markdown with YAML frontmatter.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Build converts suggestions into report data. titleTpl may use the
// placeholders understood by ExpandVars.
func Build(titleTpl, query, brief string, items []model.Suggestion, now time.Time) Data {
	d := Data{
		Title:    ExpandVars(titleTpl, query, now),
		Query:    query,
		Datetime: now.UTC().Format("2006-01-02 15:04"),
		Brief:    strings.TrimSpace(brief),
		Items:    make([]Item, 0, len(items)),
	}
	for _, s := range items {
		d.Items = append(d.Items, Item{
			Title:        s.Title,
			URL:          s.SourceURL,
			Description:  s.Description,
			Category:     string(s.Category),
			Neighborhood: s.Neighborhood,
			Source:       string(s.Source),
			Upvotes:      s.Upvotes,
			Comments:     s.Comments,
			Tags:         s.Tags,
		})
	}
	return d
}

// ExpandVars performs placeholder substitutions in a title template.
//
// Supported variables:
// - {.CurrentDate} => formatted as YYYY-MM-DD (UTC)
// - {.Query}       => the search query
func ExpandVars(s, query string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	r := strings.NewReplacer(
		"{.CurrentDate}", now.UTC().Format("2006-01-02"),
		"{.Query}", query,
	)
	return r.Replace(s)
}
