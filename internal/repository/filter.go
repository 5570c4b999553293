package repository

import "strings"

// MovieFilter holds the closed set of recognized listing filters. Each zero
// value contributes nothing to the predicate; anything outside this struct
// never reaches the query text, so unknown query parameters are ignored by
// construction rather than by runtime checks.
type MovieFilter struct {
	GenreName string // matches category.name exactly
	Rating    string // matches film.rating exactly
}

// where renders the filter into a predicate fragment and its bound
// parameters. The first present filter is introduced with WHERE, every
// subsequent one with AND, and parameters are appended in the same order
// their fragments are appended. That ordering is the contract: positional
// `?` binding means a reordering here silently swaps bound values. Filter
// values are only ever passed as parameters, never spliced into the text.
func (f MovieFilter) where() (string, []any) {
	var sb strings.Builder
	var args []any

	add := func(frag string, v any) {
		if len(args) == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(frag)
		args = append(args, v)
	}

	if f.GenreName != "" {
		add("c.name = ?", f.GenreName)
	}
	if f.Rating != "" {
		add("f.rating = ?", f.Rating)
	}
	return sb.String(), args
}
