package catalog

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrItemID      = errors.New("catalog: item id is required")
	ErrItemPrice   = errors.New("catalog: price must be non-negative")
	ErrItemRating  = errors.New("catalog: rating must be between 0 and 5")
	ErrItemRatings = errors.New("catalog: rating count must be non-negative")
	ErrItemGuests  = errors.New("catalog: max guests must be at least 1")
	ErrNotFound    = errors.New("catalog: place not found")
)

// Item is one place listing as shown on browse and search screens. Price is the nightly rate
// in minor units.
type Item struct {
	ID          string
	Name        string
	Address     string
	Description string
	Category    string
	Price       int64
	Currency    string
	Rating      float64
	NumOfRating int
	MaxGuests   int
	ImageURL    string
}

// Validate checks the invariants an item from the catalog source must hold.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrItemID
	}
	if i.Price < 0 {
		return ErrItemPrice
	}
	if i.Rating < 0 || i.Rating > 5 {
		return ErrItemRating
	}
	if i.NumOfRating < 0 {
		return ErrItemRatings
	}
	if i.MaxGuests < 1 {
		return ErrItemGuests
	}
	return nil
}

// Source supplies the full catalog. The engine never pages or fetches on its own.
type Source interface {
	Items(ctx context.Context) ([]Item, error)
	ByID(ctx context.Context, id string) (Item, error)
}
