package quote

import (
	"context"
	"time"

	"homestay/internal/app/dto"
	"homestay/internal/app/policies"
	"homestay/internal/app/queries"
	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

const computeQuoteKey = "quote.compute"

type ComputeQuoteQuery struct {
	Session     auth.Session
	PlaceID     string    `validate:"required"`
	CheckIn     time.Time `validate:"required"`
	CheckOut    time.Time `validate:"required"`
	Guests      int
	VoucherCode string `validate:"max=64"`
	DraftID     string `validate:"max=128"`
}

func (q ComputeQuoteQuery) Key() string { return computeQuoteKey }

func (q ComputeQuoteQuery) CallerSession() auth.Session { return q.Session }

// RequiresSession is false: the voucher source decides whether anonymous lookups are allowed.
func (q ComputeQuoteQuery) RequiresSession() bool { return false }

type ComputeQuoteHandler struct {
	Places   policies.CatalogSource
	Engine   domainquote.Engine
	Drafts   *Drafts
	Currency string
}

func (h *ComputeQuoteHandler) Handle(ctx context.Context, q ComputeQuoteQuery) (dto.Quote, error) {
	req, err := PlaceRequest(ctx, h.Places, h.Currency, StayInput{
		PlaceID:     q.PlaceID,
		CheckIn:     q.CheckIn,
		CheckOut:    q.CheckOut,
		Guests:      q.Guests,
		VoucherCode: q.VoucherCode,
	})
	if err != nil {
		return dto.Quote{}, err
	}

	key := ""
	if h.Drafts != nil {
		key = DraftKey(q.Session, q.DraftID)
	}
	var ticket domainquote.Ticket
	if key != "" {
		ticket = h.Drafts.Begin(key)
	}

	computed, err := h.Engine.ComputeQuote(ctx, q.Session, req)
	if err != nil {
		return dto.Quote{}, err
	}
	out := dto.MapQuote(computed)
	if key != "" {
		out.Stale = !h.Drafts.Commit(key, ticket, computed)
	}
	return out, nil
}

var _ queries.Handler[ComputeQuoteQuery, dto.Quote] = (*ComputeQuoteHandler)(nil)
