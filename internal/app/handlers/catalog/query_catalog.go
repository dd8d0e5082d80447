package catalog

import (
	"context"

	"homestay/internal/app/dto"
	"homestay/internal/app/policies"
	"homestay/internal/app/queries"
	"homestay/internal/domain/auth"
	domaincatalog "homestay/internal/domain/catalog"
)

const queryCatalogKey = "catalog.query"

type QueryCatalogQuery struct {
	Session    auth.Session
	SearchTerm string   `validate:"max=200"`
	Category   string   `validate:"max=64"`
	PriceMin   *int64   `validate:"omitempty,gte=0"`
	PriceMax   *int64   `validate:"omitempty,gte=0"`
	MinRating  *float64 `validate:"omitempty,gte=0,lte=5"`
	MinGuests  *int     `validate:"omitempty,gte=1"`
	Sort       string
	Page       int `validate:"gte=0"`
	PageSize   int `validate:"gte=0,lte=100"`
	// BrowseID ties successive requests to one cursor so a criteria change restarts at page 1.
	BrowseID string `validate:"max=128"`
}

func (q QueryCatalogQuery) Key() string { return queryCatalogKey }

func (q QueryCatalogQuery) Criteria() domaincatalog.Criteria {
	return domaincatalog.Criteria{
		SearchTerm: q.SearchTerm,
		Category:   q.Category,
		PriceMin:   q.PriceMin,
		PriceMax:   q.PriceMax,
		MinRating:  q.MinRating,
		MinGuests:  q.MinGuests,
	}
}

type QueryCatalogHandler struct {
	Places  policies.CatalogSource
	Cursors *Cursors
}

func (h *QueryCatalogHandler) Handle(ctx context.Context, q QueryCatalogQuery) (dto.CatalogPage, error) {
	items, err := h.Places.Items(ctx)
	if err != nil {
		return dto.CatalogPage{}, err
	}
	criteria := q.Criteria()
	option := domaincatalog.ParseSortOption(q.Sort)

	page := q.Page
	if key := cursorKey(q.Session, q.BrowseID); key != "" && h.Cursors != nil {
		page = h.Cursors.For(key).Resolve(criteria, option, page)
	}
	size := q.PageSize
	if size == 0 {
		size = domaincatalog.DefaultPageSize
	}

	result := domaincatalog.Query(items, criteria, option, domaincatalog.PageRequest{Page: page, Size: size})
	return dto.MapCatalogPage(result, option), nil
}

var _ queries.Handler[QueryCatalogQuery, dto.CatalogPage] = (*QueryCatalogHandler)(nil)
