package quote

import (
	"errors"
	"time"

	"homestay/internal/domain/shared/money"
)

var ErrNegativeRate = errors.New("quote: nightly rate must be non-negative")

// Request is one stay the guest is asking a price for.
type Request struct {
	PlaceID     string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	NightlyRate money.Money
	VoucherCode string
	// MaxGuests is the place capacity; zero skips the upper guest bound.
	MaxGuests int
}

// Quote is the immutable price breakdown for one Request.
type Quote struct {
	PlaceID       string
	Nights        int
	Guests        int
	NightlyRate   money.Money
	Subtotal      money.Money
	Surcharge     money.Money
	Discount      money.Money
	Total         money.Money
	VoucherStatus ResolutionStatus
	Voucher       *Voucher
}

// Aggregate combines the stages into a quote. It performs no I/O and no validation:
// callers pass nights from daterange and a voucher already resolved.
func Aggregate(req Request, nights int, voucher *Voucher) Quote {
	currency := req.NightlyRate.Currency
	subtotal := req.NightlyRate.Multiply(int64(nights))
	surcharge := Surcharge(subtotal, req.Guests)
	gross := money.Money{Amount: subtotal.Amount + surcharge.Amount, Currency: currency}

	discount := money.Zero(currency)
	var applied *Voucher
	if voucher != nil {
		v := *voucher
		applied = &v
		discount = gross.Percent(v.DiscountPercent)
		if discount.Amount > gross.Amount {
			discount = gross
		}
	}
	total := money.Money{Amount: gross.Amount - discount.Amount, Currency: currency}.ClampZero()

	status := VoucherNone
	if applied != nil {
		status = VoucherValid
	}
	return Quote{
		PlaceID:       req.PlaceID,
		Nights:        nights,
		Guests:        req.Guests,
		NightlyRate:   req.NightlyRate,
		Subtotal:      subtotal,
		Surcharge:     surcharge,
		Discount:      discount,
		Total:         total,
		VoucherStatus: status,
		Voucher:       applied,
	}
}
