package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	domaincatalog "homestay/internal/domain/catalog"
)

// PlaceRepository is an in-memory catalog source that keeps insertion order.
type PlaceRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domaincatalog.Item
}

// NewPlaceRepository builds an empty repository.
func NewPlaceRepository() *PlaceRepository {
	return &PlaceRepository{items: make(map[string]domaincatalog.Item)}
}

// Items returns a snapshot of the catalog in insertion order.
func (r *PlaceRepository) Items(ctx context.Context) ([]domaincatalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domaincatalog.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// ByID returns a place or domaincatalog.ErrNotFound.
func (r *PlaceRepository) ByID(ctx context.Context, id string) (domaincatalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return domaincatalog.Item{}, domaincatalog.ErrNotFound
	}
	return item, nil
}

// Save validates and stores or replaces a place.
func (r *PlaceRepository) Save(ctx context.Context, item domaincatalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
	return nil
}

// Len reports the number of stored places.
func (r *PlaceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

type placeFixture struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	Rating      float64 `json:"rating"`
	NumOfRating int     `json:"num_of_rating"`
	MaxGuests   int     `json:"max_guests"`
	ImageURL    string  `json:"image_url"`
}

// LoadPlaces reads a JSON array of places into the repository.
func (r *PlaceRepository) LoadPlaces(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}
	return r.LoadPlacesJSON(ctx, raw)
}

func (r *PlaceRepository) LoadPlacesJSON(ctx context.Context, raw []byte) (int, error) {
	var fixtures []placeFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return 0, fmt.Errorf("decode fixtures: %w", err)
	}
	for i, f := range fixtures {
		item := domaincatalog.Item{
			ID:          strings.TrimSpace(f.ID),
			Name:        f.Name,
			Address:     f.Address,
			Description: f.Description,
			Category:    f.Category,
			Price:       f.PriceCents,
			Currency:    strings.ToUpper(strings.TrimSpace(f.Currency)),
			Rating:      f.Rating,
			NumOfRating: f.NumOfRating,
			MaxGuests:   f.MaxGuests,
			ImageURL:    f.ImageURL,
		}
		if err := r.Save(ctx, item); err != nil {
			return i, fmt.Errorf("fixture %d (%s): %w", i, f.ID, err)
		}
	}
	return len(fixtures), nil
}

var _ domaincatalog.Source = (*PlaceRepository)(nil)

