package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homestay/internal/domain/auth"
)

var (
	// ErrEmptyCode is returned before any lookup when the code is blank.
	ErrEmptyCode = errors.New("voucher: code is empty")
	// ErrLookupFailed wraps infrastructure failures; the caller may let the user retry.
	ErrLookupFailed = errors.New("voucher: lookup failed")

	// ErrVoucherNotFound is reported by lookups when the remote side rejects the code.
	ErrVoucherNotFound = errors.New("voucher: not found")
	// ErrMalformedVoucher is reported by lookups when the response cannot be used.
	ErrMalformedVoucher = errors.New("voucher: malformed response")
)

// Voucher is a code redeemable for a percentage discount.
type Voucher struct {
	Code            string
	DiscountPercent float64
}

// Valid reports whether the discount lies within [0, 100].
func (v Voucher) Valid() bool {
	return strings.TrimSpace(v.Code) != "" && v.DiscountPercent >= 0 && v.DiscountPercent <= 100
}

// Lookup is the external voucher source.
type Lookup interface {
	Lookup(ctx context.Context, session auth.Session, code string) (Voucher, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, session auth.Session, code string) (Voucher, error)

func (f LookupFunc) Lookup(ctx context.Context, session auth.Session, code string) (Voucher, error) {
	return f(ctx, session, code)
}

type ResolutionStatus string

const (
	VoucherNone    ResolutionStatus = ""
	VoucherValid   ResolutionStatus = "valid"
	VoucherInvalid ResolutionStatus = "invalid"
)

// Resolution is the business outcome of resolving a code. Invalid is not an error.
type Resolution struct {
	Status  ResolutionStatus
	Code    string
	Voucher *Voucher
}

// Applied returns the voucher to price with, or nil.
func (r Resolution) Applied() *Voucher {
	if r.Status != VoucherValid {
		return nil
	}
	return r.Voucher
}

// Resolver turns codes into vouchers. Every call goes to the lookup; nothing is cached or retried.
type Resolver struct {
	Lookup Lookup
}

func (r Resolver) Resolve(ctx context.Context, session auth.Session, code string) (Resolution, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Resolution{}, ErrEmptyCode
	}
	if r.Lookup == nil {
		return Resolution{}, fmt.Errorf("%w: lookup not configured", ErrLookupFailed)
	}
	voucher, err := r.Lookup.Lookup(ctx, session, code)
	switch {
	case err == nil:
	case errors.Is(err, ErrVoucherNotFound), errors.Is(err, ErrMalformedVoucher):
		return Resolution{Status: VoucherInvalid, Code: code}, nil
	default:
		return Resolution{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if !voucher.Valid() {
		return Resolution{Status: VoucherInvalid, Code: code}, nil
	}
	return Resolution{Status: VoucherValid, Code: code, Voucher: &voucher}, nil
}
