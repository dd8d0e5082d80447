package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/app/dto"
	quoteapp "homestay/internal/app/handlers/quote"
	"homestay/internal/app/queries"
)

// QuoteHandler wires quote and voucher queries to HTTP.
type QuoteHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

type computeQuoteRequest struct {
	PlaceID     string `json:"place_id" binding:"required"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Guests      int    `json:"guests"`
	VoucherCode string `json:"voucher_code"`
	DraftID     string `json:"draft_id"`
}

func (h QuoteHandler) Compute(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quotes unavailable"})
		return
	}
	var req computeQuoteRequest
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
	query := quoteapp.ComputeQuoteQuery{
		Session:     currentSession(c),
		PlaceID:     req.PlaceID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		VoucherCode: req.VoucherCode,
		DraftID:     req.DraftID,
	}
	result, err := queries.Ask[quoteapp.ComputeQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h QuoteHandler) Draft(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quotes unavailable"})
		return
	}
	query := quoteapp.GetDraftQuery{Session: currentSession(c), DraftID: c.Param("id")}
	result, err := queries.Ask[quoteapp.GetDraftQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type resolveVoucherRequest struct {
	Code string `json:"code"`
}

func (h QuoteHandler) ResolveVoucher(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vouchers unavailable"})
		return
	}
	var req resolveVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	query := quoteapp.ResolveVoucherQuery{Session: currentSession(c), Code: req.Code}
	result, err := queries.Ask[quoteapp.ResolveVoucherQuery, dto.VoucherResolution](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ QuoteHTTP = QuoteHandler{}
