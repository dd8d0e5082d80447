package dto

import "homestay/internal/domain/catalog"

// CatalogPage is one page of filtered, ordered places.
type CatalogPage struct {
	Items      []PlaceCard `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPages int         `json:"total_pages"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	Sort       string      `json:"sort"`
}

// PlaceCard is the lightweight representation for listing cards.
type PlaceCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       MoneyDTO `json:"price"`
	Rating      float64  `json:"rating"`
	NumOfRating int      `json:"num_of_rating"`
	MaxGuests   int      `json:"max_guests"`
	ImageURL    string   `json:"image_url,omitempty"`
}

func MapCatalogPage(page catalog.Page, sort catalog.SortOption) CatalogPage {
	items := make([]PlaceCard, 0, len(page.Items))
	for _, it := range page.Items {
		items = append(items, MapPlaceCard(it))
	}
	return CatalogPage{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.Size,
		Sort:       string(sort),
	}
}

func MapPlaceCard(it catalog.Item) PlaceCard {
	return PlaceCard{
		ID:          it.ID,
		Name:        it.Name,
		Address:     it.Address,
		Description: it.Description,
		Category:    it.Category,
		Price:       MoneyDTO{Amount: it.Price, Major: float64(it.Price) / 100, Currency: it.Currency},
		Rating:      it.Rating,
		NumOfRating: it.NumOfRating,
		MaxGuests:   it.MaxGuests,
		ImageURL:    it.ImageURL,
	}
}
