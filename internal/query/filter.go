// Package query derives the visible subset of a collection from a
// free-text search term and a set of facet filters. Everything here is
// pure: the same inputs always yield the same output, and the input
// slice is never mutated, so calling on every keystroke is safe.
package query

import "strings"

// All is the facet value meaning "no constraint".
const All = "all"

// Facets maps a facet name to its selected value. A missing facet, an
// empty value, or All leaves that dimension unconstrained.
type Facets map[string]string

// Descriptor configures filtering for one resource kind: which fields
// free-text search scans, and which field each facet compares against.
type Descriptor[T any] struct {
	SearchFields []func(T) string
	FacetFields  map[string]func(T) string
}

// Filter returns the entities matching the term and every active facet,
// preserving input order. Search is a case-insensitive substring match
// over the descriptor's search fields; facets are exact matches.
func Filter[T any](items []T, term string, facets Facets, d Descriptor[T]) []T {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if term != "" && !matchesTerm(item, term, d.SearchFields) {
			continue
		}
		if !matchesFacets(item, facets, d.FacetFields) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm[T any](item T, term string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func matchesFacets[T any](item T, facets Facets, fields map[string]func(T) string) bool {
	for name, selected := range facets {
		if selected == "" || selected == All {
			continue
		}
		field, ok := fields[name]
		if !ok {
			// Unknown facet names constrain nothing.
			continue
		}
		if field(item) != selected {
			return false
		}
	}
	return true
}
