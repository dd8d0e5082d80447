package ginserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	quoteapp "homestay/internal/app/handlers/quote"
	"homestay/internal/app/middleware"
	"homestay/internal/domain/auth"
	"homestay/internal/domain/booking"
	"homestay/internal/domain/catalog"
	"homestay/internal/domain/quote"
	"homestay/internal/domain/shared/daterange"
)

type apiError struct {
	status int
	code   string
}

var errorTable = []struct {
	target error
	apiError
}{
	{daterange.ErrPastCheckIn, apiError{http.StatusUnprocessableEntity, "past_check_in"}},
	{daterange.ErrInvertedRange, apiError{http.StatusUnprocessableEntity, "inverted_range"}},
	{quote.ErrGuestCount, apiError{http.StatusUnprocessableEntity, "guest_count"}},
	{quote.ErrNegativeRate, apiError{http.StatusUnprocessableEntity, "negative_rate"}},
	{quote.ErrEmptyCode, apiError{http.StatusUnprocessableEntity, "empty_code"}},
	{middleware.ErrInvalidMessage, apiError{http.StatusUnprocessableEntity, "invalid_request"}},
	{booking.ErrSubmissionInvalid, apiError{http.StatusUnprocessableEntity, "invalid_submission"}},
	{booking.ErrTotalMismatch, apiError{http.StatusConflict, "total_mismatch"}},
	{middleware.ErrRequestInFlight, apiError{http.StatusConflict, "request_in_flight"}},
	{catalog.ErrNotFound, apiError{http.StatusNotFound, "place_not_found"}},
	{quoteapp.ErrDraftNotFound, apiError{http.StatusNotFound, "draft_not_found"}},
	{auth.ErrSessionRequired, apiError{http.StatusUnauthorized, "session_required"}},
	{quote.ErrLookupFailed, apiError{http.StatusBadGateway, "voucher_lookup_failed"}},
	{context.DeadlineExceeded, apiError{http.StatusGatewayTimeout, "timeout"}},
}

var submissionStatus = map[booking.FailureKind]int{
	booking.FailureRejected:    http.StatusUnprocessableEntity,
	booking.FailureConflict:    http.StatusConflict,
	booking.FailureUnavailable: http.StatusServiceUnavailable,
	booking.FailureUnknown:     http.StatusBadGateway,
}

// writeError maps application errors onto HTTP responses in one place.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var subErr *booking.SubmissionError
	if errors.As(err, &subErr) {
		status, ok := submissionStatus[subErr.Kind]
		if !ok {
			status = http.StatusBadGateway
		}
		logFailure(c, logger, status, err)
		c.JSON(status, gin.H{"error": subErr.Message, "code": "booking_" + string(subErr.Kind)})
		return
	}
	for _, entry := range errorTable {
		if errors.Is(err, entry.target) {
			logFailure(c, logger, entry.status, err)
			c.JSON(entry.status, gin.H{"error": err.Error(), "code": entry.code})
			return
		}
	}
	logFailure(c, logger, http.StatusInternalServerError, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "bad_request"})
}

func logFailure(c *gin.Context, logger *slog.Logger, status int, err error) {
	if logger == nil || status < http.StatusInternalServerError {
		return
	}
	logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "status", status, "error", err)
}
