package dto

import (
	"homestay/internal/domain/quote"
	"homestay/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64   `json:"amount"`
	Major    float64 `json:"major"`
	Currency string  `json:"currency"`
}

type VoucherDTO struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}

// Quote is the price breakdown shown before booking.
type Quote struct {
	PlaceID       string      `json:"place_id"`
	Nights        int         `json:"nights"`
	Guests        int         `json:"guests"`
	NightlyRate   MoneyDTO    `json:"nightly_rate"`
	Subtotal      MoneyDTO    `json:"subtotal"`
	Surcharge     MoneyDTO    `json:"surcharge"`
	Discount      MoneyDTO    `json:"discount"`
	Total         MoneyDTO    `json:"total"`
	VoucherStatus string      `json:"voucher_status,omitempty"`
	Voucher       *VoucherDTO `json:"voucher,omitempty"`
	// Stale is set when a newer quote for the same draft was requested while this one was computed.
	Stale bool `json:"stale"`
}

type VoucherResolution struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Voucher *VoucherDTO `json:"voucher,omitempty"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Major: value.Major(), Currency: value.Currency}
}

func MapVoucher(v *quote.Voucher) *VoucherDTO {
	if v == nil {
		return nil
	}
	return &VoucherDTO{Code: v.Code, DiscountPercent: v.DiscountPercent}
}

func MapQuote(q quote.Quote) Quote {
	return Quote{
		PlaceID:       q.PlaceID,
		Nights:        q.Nights,
		Guests:        q.Guests,
		NightlyRate:   MapMoney(q.NightlyRate),
		Subtotal:      MapMoney(q.Subtotal),
		Surcharge:     MapMoney(q.Surcharge),
		Discount:      MapMoney(q.Discount),
		Total:         MapMoney(q.Total),
		VoucherStatus: string(q.VoucherStatus),
		Voucher:       MapVoucher(q.Voucher),
	}
}

func MapResolution(r quote.Resolution) VoucherResolution {
	return VoucherResolution{Status: string(r.Status), Code: r.Code, Voucher: MapVoucher(r.Voucher)}
}
