package booking

import (
	"time"

	"homestay/internal/domain/shared/events"
)

const EventSubmitted = "booking.submitted"

// Submitted is published when a priced booking is handed to the booking collaborator.
type Submitted struct {
	events.BaseEvent `json:"-"`
	BookingID   string    `json:"booking_id"`
	PlaceID     string    `json:"place_id"`
	GuestID     string    `json:"guest_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Guests      int       `json:"guests"`
	TotalAmount int64     `json:"total_amount"`
	Currency    string    `json:"currency"`
	VoucherCode string    `json:"voucher_code,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewSubmitted(bookingID string, s Submission) Submitted {
	return Submitted{
		BaseEvent:   events.BaseEvent{Name: EventSubmitted, Aggregate: s.PlaceID, Time: s.SubmittedAt},
		BookingID:   bookingID,
		PlaceID:     s.PlaceID,
		GuestID:     s.GuestID,
		CheckIn:     s.CheckIn,
		CheckOut:    s.CheckOut,
		Guests:      s.Guests,
		TotalAmount: s.TotalPrice.Amount,
		Currency:    s.TotalPrice.Currency,
		VoucherCode: s.VoucherCode,
		SubmittedAt: s.SubmittedAt,
	}
}
