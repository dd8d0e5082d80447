package dto

import "time"

type BookingReceipt struct {
	BookingID string    `json:"booking_id"`
	Total     MoneyDTO  `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
