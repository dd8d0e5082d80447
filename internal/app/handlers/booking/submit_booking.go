package booking

import (
	"context"
	"errors"
	"time"

	"homestay/internal/app/commands"
	"homestay/internal/app/dto"
	"homestay/internal/app/handlers/quote"
	"homestay/internal/app/middleware"
	"homestay/internal/app/policies"
	"homestay/internal/domain/auth"
	domainbooking "homestay/internal/domain/booking"
	domainquote "homestay/internal/domain/quote"
)

const submitBookingKey = "booking.submit"

type SubmitBookingCommand struct {
	Session     auth.Session
	PlaceID     string    `validate:"required"`
	CheckIn     time.Time `validate:"required"`
	CheckOut    time.Time `validate:"required"`
	Guests      int
	VoucherCode string `validate:"max=64"`
	// ExpectedTotal is the total the guest confirmed, in minor units. When set it must match the
	// freshly computed quote.
	ExpectedTotal   *int64
	IdempotencyKeyV string `validate:"max=128"`
}

func (c SubmitBookingCommand) Key() string { return submitBookingKey }

// IdempotencyKey scopes the client key to the caller so two guests never share a replay.
func (c SubmitBookingCommand) IdempotencyKey() string {
	owner := c.Session.OwnerKey()
	if c.IdempotencyKeyV == "" || owner == "" {
		return ""
	}
	return owner + ":" + c.IdempotencyKeyV
}

func (c SubmitBookingCommand) ResultPrototype() any { return &dto.BookingReceipt{} }

func (c SubmitBookingCommand) CallerSession() auth.Session { return c.Session }

func (c SubmitBookingCommand) RequiresSession() bool { return true }

type SubmitBookingHandler struct {
	Places    policies.CatalogSource
	Engine    domainquote.Engine
	Submitter policies.BookingSubmitter
	Currency  string
	Now       func() time.Time
}

func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd SubmitBookingCommand) (*dto.BookingReceipt, error) {
	req, err := quote.PlaceRequest(ctx, h.Places, h.Currency, quote.StayInput{
		PlaceID:     cmd.PlaceID,
		CheckIn:     cmd.CheckIn,
		CheckOut:    cmd.CheckOut,
		Guests:      cmd.Guests,
		VoucherCode: cmd.VoucherCode,
	})
	if err != nil {
		return nil, err
	}
	priced, err := h.Engine.ComputeQuote(ctx, cmd.Session, req)
	if err != nil {
		return nil, err
	}
	if cmd.ExpectedTotal != nil && *cmd.ExpectedTotal != priced.Total.Amount {
		return nil, domainbooking.ErrTotalMismatch
	}

	submission := domainbooking.Submission{
		PlaceID:     priced.PlaceID,
		GuestID:     cmd.Session.UserID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      priced.Guests,
		TotalPrice:  priced.Total,
		SubmittedAt: h.now(),
	}
	if priced.Voucher != nil {
		submission.VoucherCode = priced.Voucher.Code
	}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	receipt, err := h.Submitter.Submit(ctx, cmd.Session, submission)
	if err != nil {
		var subErr *domainbooking.SubmissionError
		if errors.As(err, &subErr) {
			return nil, subErr
		}
		return nil, domainbooking.NewSubmissionError(domainbooking.FailureUnknown, err)
	}
	return &dto.BookingReceipt{
		BookingID: receipt.BookingID,
		Total:     dto.MapMoney(priced.Total),
		CreatedAt: receipt.CreatedAt,
	}, nil
}

func (h *SubmitBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[SubmitBookingCommand, *dto.BookingReceipt] = (*SubmitBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*SubmitBookingCommand)(nil)
var _ middleware.SessionBound = SubmitBookingCommand{}
