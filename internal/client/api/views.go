package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/voicenotes/internal/dto"
	"github.com/dmitrijs2005/voicenotes/internal/notefilter"
)

// View selects one of the note lists.
type View int

const (
	AllView View = iota
	FavouritesView
	SearchView
)

func (v View) String() string {
	switch v {
	case AllView:
		return "all"
	case FavouritesView:
		return "favourites"
	case SearchView:
		return "search"
	default:
		return "unknown"
	}
}

// Fetch loads the collection behind v and applies the view's predicate
// locally, so the rendered list holds even if the server returns a wider
// set. query is used by SearchView only.
func (c *Client) Fetch(ctx context.Context, v View, query string) ([]dto.Note, error) {
	switch v {
	case AllView:
		return c.AllNotes(ctx)
	case FavouritesView:
		notes, err := c.FavouriteNotes(ctx)
		if err != nil {
			return nil, err
		}
		return notefilter.Favourites(notes), nil
	case SearchView:
		notes, err := c.SearchNotes(ctx, query)
		if err != nil {
			return nil, err
		}
		return notefilter.SearchTitle(notes, query), nil
	default:
		return nil, fmt.Errorf("unknown view %d", int(v))
	}
}
