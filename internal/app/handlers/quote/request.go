package quote

import (
	"context"
	"strings"
	"time"

	"homestay/internal/app/policies"
	domainquote "homestay/internal/domain/quote"
	"homestay/internal/domain/shared/money"
)

// StayInput is the guest-supplied part of a quote or booking.
type StayInput struct {
	PlaceID     string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	VoucherCode string
}

// PlaceRequest completes input with the nightly rate and capacity held by the catalog.
func PlaceRequest(ctx context.Context, places policies.CatalogSource, currency string, in StayInput) (domainquote.Request, error) {
	item, err := places.ByID(ctx, strings.TrimSpace(in.PlaceID))
	if err != nil {
		return domainquote.Request{}, err
	}
	if item.Currency != "" {
		currency = item.Currency
	}
	rate, err := money.New(item.Price, currency)
	if err != nil {
		return domainquote.Request{}, err
	}
	return domainquote.Request{
		PlaceID:     item.ID,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		Guests:      in.Guests,
		NightlyRate: rate,
		VoucherCode: in.VoucherCode,
		MaxGuests:   item.MaxGuests,
	}, nil
}
