package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"homestay/internal/domain/shared/money"
)

var (
	ErrSubmissionInvalid = errors.New("booking: submission is incomplete")
	ErrTotalMismatch     = errors.New("booking: total price does not match the current quote")
)

// Submission is what the booking collaborator accepts. Only TotalPrice comes from the quote.
type Submission struct {
	PlaceID     string
	GuestID     string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	TotalPrice  money.Money
	VoucherCode string
	SubmittedAt time.Time
}

func (s Submission) Validate() error {
	switch {
	case strings.TrimSpace(s.PlaceID) == "":
		return fmt.Errorf("%w: place id", ErrSubmissionInvalid)
	case s.Guests < 1:
		return fmt.Errorf("%w: guests", ErrSubmissionInvalid)
	case !s.CheckOut.After(s.CheckIn):
		return fmt.Errorf("%w: dates", ErrSubmissionInvalid)
	case s.TotalPrice.Amount < 0 || s.TotalPrice.Currency == "":
		return fmt.Errorf("%w: total price", ErrSubmissionInvalid)
	}
	return nil
}

// Receipt identifies the booking created by the collaborator.
type Receipt struct {
	BookingID string
	CreatedAt time.Time
}

// FailureKind classifies a collaborator failure for presentation.
type FailureKind string

const (
	FailureRejected    FailureKind = "rejected"
	FailureConflict    FailureKind = "conflict"
	FailureUnavailable FailureKind = "unavailable"
	FailureUnknown     FailureKind = "unknown"
)

// SubmissionError carries a user-facing message. Submissions are never retried automatically.
type SubmissionError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return "booking: " + e.Message
	}
	return fmt.Sprintf("booking: %s: %v", e.Message, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// NewSubmissionError picks the user-facing message for kind.
func NewSubmissionError(kind FailureKind, err error) *SubmissionError {
	return &SubmissionError{Kind: kind, Message: UserMessage(kind), Err: err}
}

// FailureFromStatus maps a transport status code to a failure kind.
func FailureFromStatus(status int) FailureKind {
	switch {
	case status == 409:
		return FailureConflict
	case status >= 400 && status < 500:
		return FailureRejected
	case status >= 500:
		return FailureUnavailable
	default:
		return FailureUnknown
	}
}

func UserMessage(kind FailureKind) string {
	switch kind {
	case FailureRejected:
		return "the booking request was rejected, please review the details"
	case FailureConflict:
		return "these dates are no longer available"
	case FailureUnavailable:
		return "booking service is temporarily unavailable, please try again"
	default:
		return "booking could not be completed"
	}
}
