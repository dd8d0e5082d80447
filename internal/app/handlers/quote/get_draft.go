package quote

import (
	"context"
	"errors"

	"homestay/internal/app/dto"
	"homestay/internal/app/queries"
	"homestay/internal/domain/auth"
)

const getDraftKey = "quote.draft"

var ErrDraftNotFound = errors.New("quote: draft not found")

type GetDraftQuery struct {
	Session auth.Session
	DraftID string `validate:"required,max=128"`
}

func (q GetDraftQuery) Key() string { return getDraftKey }

func (q GetDraftQuery) CallerSession() auth.Session { return q.Session }

func (q GetDraftQuery) RequiresSession() bool { return true }

type GetDraftHandler struct {
	Drafts *Drafts
}

func (h *GetDraftHandler) Handle(ctx context.Context, q GetDraftQuery) (dto.Quote, error) {
	key := DraftKey(q.Session, q.DraftID)
	if h.Drafts == nil || key == "" {
		return dto.Quote{}, ErrDraftNotFound
	}
	latest, ok := h.Drafts.Latest(key)
	if !ok {
		return dto.Quote{}, ErrDraftNotFound
	}
	return dto.MapQuote(latest), nil
}

var _ queries.Handler[GetDraftQuery, dto.Quote] = (*GetDraftHandler)(nil)
