package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"homestay/internal/app/outbox"
	"homestay/internal/app/policies"
	"homestay/internal/domain/auth"
	domainbooking "homestay/internal/domain/booking"
)

const SubmissionsTopic = "booking.submissions"

type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// BookingSubmitter publishes priced bookings as booking.submitted events keyed by place.
// A failed publish is reported once and never retried here.
type BookingSubmitter struct {
	Publisher Publisher
	Topic     string
	Encoder   outbox.EventEncoder
	Now       func() time.Time
	NewID     func() string
}

func NewBookingSubmitter(publisher Publisher, topicPrefix string) *BookingSubmitter {
	return &BookingSubmitter{
		Publisher: publisher,
		Topic:     topicPrefix + SubmissionsTopic,
		Encoder:   outbox.JSONEventEncoder{},
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

func (s *BookingSubmitter) Submit(ctx context.Context, session auth.Session, submission domainbooking.Submission) (domainbooking.Receipt, error) {
	if !session.Authenticated() {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(domainbooking.FailureRejected, auth.ErrSessionRequired)
	}
	if err := submission.Validate(); err != nil {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(domainbooking.FailureRejected, err)
	}

	bookingID := s.NewID()
	record, err := s.Encoder.Encode(domainbooking.NewSubmitted(bookingID, submission))
	if err != nil {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(domainbooking.FailureUnknown, err)
	}
	headers := record.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	headers["event_id"] = record.ID
	headers["booking_id"] = bookingID
	headers["guest_id"] = submission.GuestID

	if err := s.Publisher.Publish(ctx, s.Topic, record.Aggregate, record.Payload, headers); err != nil {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(classifyPublishError(err), err)
	}
	return domainbooking.Receipt{BookingID: bookingID, CreatedAt: s.Now().UTC()}, nil
}

func classifyPublishError(err error) domainbooking.FailureKind {
	switch {
	case errors.Is(err, sarama.ErrOutOfBrokers),
		errors.Is(err, sarama.ErrNotConnected),
		errors.Is(err, sarama.ErrClosedClient),
		errors.Is(err, sarama.ErrShuttingDown),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domainbooking.FailureUnavailable
	case errors.Is(err, sarama.ErrMessageSizeTooLarge), errors.Is(err, sarama.ErrInvalidMessage):
		return domainbooking.FailureRejected
	default:
		return domainbooking.FailureUnknown
	}
}

var _ policies.BookingSubmitter = (*BookingSubmitter)(nil)
