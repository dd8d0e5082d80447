package quote

import (
	"context"

	"homestay/internal/app/dto"
	"homestay/internal/app/queries"
	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

const resolveVoucherKey = "voucher.resolve"

type ResolveVoucherQuery struct {
	Session auth.Session
	Code    string `validate:"max=64"`
}

func (q ResolveVoucherQuery) Key() string { return resolveVoucherKey }

func (q ResolveVoucherQuery) CallerSession() auth.Session { return q.Session }

func (q ResolveVoucherQuery) RequiresSession() bool { return false }

type ResolveVoucherHandler struct {
	Resolver domainquote.Resolver
}

func (h *ResolveVoucherHandler) Handle(ctx context.Context, q ResolveVoucherQuery) (dto.VoucherResolution, error) {
	res, err := h.Resolver.Resolve(ctx, q.Session, q.Code)
	if err != nil {
		return dto.VoucherResolution{}, err
	}
	return dto.MapResolution(res), nil
}

var _ queries.Handler[ResolveVoucherQuery, dto.VoucherResolution] = (*ResolveVoucherHandler)(nil)
