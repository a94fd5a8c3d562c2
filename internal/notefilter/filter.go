// Package notefilter holds the list-view predicates shared by the API server
// and the client: favourite flag equality and case-insensitive title search.
package notefilter

import "strings"

// Note is what the predicates need to know about a note.
type Note interface {
	GetTitle() string
	GetIsFavourite() bool
}

// Favourites keeps notes whose favourite flag is set, preserving order.
func Favourites[N Note](notes []N) []N {
	return Filter(notes, func(n N) bool { return n.GetIsFavourite() })
}

// SearchTitle keeps notes whose title contains query, ignoring case,
// preserving order.
func SearchTitle[N Note](notes []N, query string) []N {
	q := strings.ToLower(query)
	return Filter(notes, func(n N) bool { return strings.Contains(strings.ToLower(n.GetTitle()), q) })
}

// Filter returns the notes matching keep. The result is never nil so it
// encodes as an empty JSON array.
func Filter[N any](notes []N, keep func(N) bool) []N {
	out := make([]N, 0, len(notes))
	for _, n := range notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
