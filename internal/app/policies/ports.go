package policies

import (
	"context"

	"homestay/internal/domain/auth"
	"homestay/internal/domain/booking"
	"homestay/internal/domain/catalog"
	"homestay/internal/domain/quote"
)

// VoucherLookup is the remote voucher source.
type VoucherLookup = quote.Lookup

// CatalogSource supplies place records.
type CatalogSource = catalog.Source

// BookingSubmitter hands a priced booking to the booking collaborator.
type BookingSubmitter interface {
	Submit(ctx context.Context, session auth.Session, submission booking.Submission) (booking.Receipt, error)
}
