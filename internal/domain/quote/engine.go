package quote

import (
	"context"
	"strings"
	"time"

	"homestay/internal/domain/auth"
	"homestay/internal/domain/shared/daterange"
)

// Engine computes quotes. It holds no state between calls.
type Engine struct {
	Vouchers Resolver
	Now      func() time.Time
}

func NewEngine(lookup Lookup) Engine {
	return Engine{Vouchers: Resolver{Lookup: lookup}, Now: time.Now}
}

// ComputeQuote validates the request, resolves the voucher when one is given and prices the stay.
// Validation errors come back before any lookup. An invalid voucher does not fail the quote; the
// result carries VoucherInvalid and no discount. Lookup failures are returned wrapped in ErrLookupFailed.
func (e Engine) ComputeQuote(ctx context.Context, session auth.Session, req Request) (Quote, error) {
	nights, err := daterange.Validate(req.CheckIn, req.CheckOut, e.now())
	if err != nil {
		return Quote{}, err
	}
	if err := ValidateGuests(req.Guests, req.MaxGuests); err != nil {
		return Quote{}, err
	}
	if req.NightlyRate.Amount < 0 {
		return Quote{}, ErrNegativeRate
	}

	var resolution Resolution
	if strings.TrimSpace(req.VoucherCode) != "" {
		resolution, err = e.Vouchers.Resolve(ctx, session, req.VoucherCode)
		if err != nil {
			return Quote{}, err
		}
	}

	q := Aggregate(req, nights, resolution.Applied())
	if resolution.Status == VoucherInvalid {
		q.VoucherStatus = VoucherInvalid
	}
	return q, nil
}

func (e Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
