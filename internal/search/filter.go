// Package search implements the in-memory list filtering shared by the
// catalog, customer and invoice screens: a case-insensitive substring match
// over each record's searchable fields, optionally narrowed by facet
// predicates.
package search

import "strings"

// Predicate is a facet such as "raw materials only" or "low stock only".
// Facets are built by the domain packages so the underlying rules live in
// one place.
type Predicate[T any] func(T) bool

// Filter returns the records matching the query and every facet, preserving
// the original relative order. An empty query matches everything; an empty
// result is a normal state, not an error.
func Filter[T any](records []T, query string, fields func(T) []string, facets ...Predicate[T]) []T {
	matched := make([]T, 0, len(records))

	for _, rec := range records {
		if !Matches(query, fields(rec)) {
			continue
		}

		ok := true

		for _, facet := range facets {
			if !facet(rec) {
				ok = false
				break
			}
		}

		if ok {
			matched = append(matched, rec)
		}
	}

	return matched
}

// Matches reports whether any of the fields contains the query,
// case-insensitively. An empty query matches.
func Matches(query string, fields []string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}

	return false
}
