package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"homestay/internal/domain/auth"
	domainbooking "homestay/internal/domain/booking"
)

// BookingRecorder accepts submissions in memory and hands out booking ids.
type BookingRecorder struct {
	mu          sync.RWMutex
	submissions map[string]domainbooking.Submission
	order       []string
	now         func() time.Time
}

func NewBookingRecorder() *BookingRecorder {
	return &BookingRecorder{submissions: make(map[string]domainbooking.Submission), now: time.Now}
}

func (r *BookingRecorder) Submit(ctx context.Context, session auth.Session, submission domainbooking.Submission) (domainbooking.Receipt, error) {
	if !session.Authenticated() {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(domainbooking.FailureRejected, auth.ErrSessionRequired)
	}
	if err := submission.Validate(); err != nil {
		return domainbooking.Receipt{}, domainbooking.NewSubmissionError(domainbooking.FailureRejected, err)
	}
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[id] = submission
	r.order = append(r.order, id)
	return domainbooking.Receipt{BookingID: id, CreatedAt: r.now().UTC()}, nil
}

// Submissions returns recorded submissions in arrival order.
func (r *BookingRecorder) Submissions() []domainbooking.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domainbooking.Submission, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.submissions[id])
	}
	return out
}
