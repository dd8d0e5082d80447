package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/app/commands"
	"homestay/internal/app/dto"
	bookingapp "homestay/internal/app/handlers/booking"
)

type BookingHandler struct {
	Commands commands.Bus
	Logger   *slog.Logger
}

type createBookingRequest struct {
	PlaceID       string `json:"place_id" binding:"required"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Guests        int    `json:"guests"`
	VoucherCode   string `json:"voucher_code"`
	ExpectedTotal *int64 `json:"expected_total"`
}

func (h BookingHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	checkIn, err := parseDate("check_in", req.CheckIn)
	if err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	checkOut, err := parseDate("check_out", req.CheckOut)
	if err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	cmd := bookingapp.SubmitBookingCommand{
		Session:         currentSession(c),
		PlaceID:         req.PlaceID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		VoucherCode:     req.VoucherCode,
		ExpectedTotal:   req.ExpectedTotal,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.SubmitBookingCommand, *dto.BookingReceipt](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

var _ BookingHTTP = BookingHandler{}
