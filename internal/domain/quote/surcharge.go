package quote

import (
	"errors"
	"fmt"

	"homestay/internal/domain/shared/money"
)

const (
	// SurchargeGuestThreshold is the guest count from which the surcharge applies.
	SurchargeGuestThreshold = 3
	// SurchargePercent is charged on the subtotal once the threshold is reached.
	SurchargePercent = 30
	// ExtraGuestAllowance is how many guests over a place's capacity may still book.
	ExtraGuestAllowance = 2
)

var ErrGuestCount = errors.New("quote: guest count out of range")

// Surcharge is a step function: 30% of the subtotal for groups of three or more, nothing otherwise.
func Surcharge(subtotal money.Money, guests int) money.Money {
	if guests < SurchargeGuestThreshold {
		return money.Zero(subtotal.Currency)
	}
	return subtotal.Percent(SurchargePercent)
}

// ValidateGuests rejects counts below one and, when the capacity is known (maxGuests > 0),
// counts above maxGuests + ExtraGuestAllowance.
func ValidateGuests(guests, maxGuests int) error {
	if guests < 1 {
		return fmt.Errorf("%w: at least one guest required", ErrGuestCount)
	}
	if maxGuests > 0 && guests > maxGuests+ExtraGuestAllowance {
		return fmt.Errorf("%w: at most %d guests allowed", ErrGuestCount, maxGuests+ExtraGuestAllowance)
	}
	return nil
}
