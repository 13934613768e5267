package model

// Status summarizes how a single source search went.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// SourceResult is the outcome of one source search. A failed result may still
// carry partial or fallback suggestions.
type SourceResult struct {
	Source      Source
	Suggestions []Suggestion
	Status      Status
	Err         error
	Cached      bool
}

// NewResult builds a result and derives its status from err and the list size.
func NewResult(src Source, items []Suggestion, err error) SourceResult {
	r := SourceResult{Source: src, Suggestions: items, Err: err}
	switch {
	case err != nil:
		r.Status = StatusFailed
	case len(items) == 0:
		r.Status = StatusEmpty
	default:
		r.Status = StatusOK
	}
	return r
}

// Reason returns the failure message, or "" when the search did not fail.
func (r SourceResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
