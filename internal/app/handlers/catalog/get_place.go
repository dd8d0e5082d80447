package catalog

import (
	"context"
	"strings"

	"homestay/internal/app/dto"
	"homestay/internal/app/policies"
	"homestay/internal/app/queries"
)

const getPlaceKey = "catalog.place"

type GetPlaceQuery struct {
	PlaceID string `validate:"required"`
}

func (q GetPlaceQuery) Key() string { return getPlaceKey }

type GetPlaceHandler struct {
	Places policies.CatalogSource
}

func (h *GetPlaceHandler) Handle(ctx context.Context, q GetPlaceQuery) (dto.PlaceCard, error) {
	item, err := h.Places.ByID(ctx, strings.TrimSpace(q.PlaceID))
	if err != nil {
		return dto.PlaceCard{}, err
	}
	return dto.MapPlaceCard(item), nil
}

var _ queries.Handler[GetPlaceQuery, dto.PlaceCard] = (*GetPlaceHandler)(nil)
