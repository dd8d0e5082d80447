package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

// VoucherLookup reads vouchers from the vouchers collection. Expired or disabled
// vouchers are reported as not found.
type VoucherLookup struct {
	col *mongo.Collection
	now func() time.Time
}

func NewVoucherLookup(db *mongo.Database) *VoucherLookup {
	return &VoucherLookup{col: db.Collection("vouchers"), now: time.Now}
}

type voucherDocument struct {
	Code            string     `bson:"_id"`
	DiscountPercent *float64   `bson:"discount_percent"`
	Active          *bool      `bson:"active"`
	ExpiresAt       *time.Time `bson:"expires_at"`
}

func (l *VoucherLookup) Lookup(ctx context.Context, session auth.Session, code string) (domainquote.Voucher, error) {
	var doc voucherDocument
	err := l.col.FindOne(ctx, bson.M{"_id": strings.ToUpper(strings.TrimSpace(code))}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainquote.Voucher{}, domainquote.ErrVoucherNotFound
		}
		return domainquote.Voucher{}, err
	}
	return doc.toVoucher(l.now())
}

func (d voucherDocument) toVoucher(now time.Time) (domainquote.Voucher, error) {
	if d.Active != nil && !*d.Active {
		return domainquote.Voucher{}, domainquote.ErrVoucherNotFound
	}
	if d.ExpiresAt != nil && !now.Before(*d.ExpiresAt) {
		return domainquote.Voucher{}, domainquote.ErrVoucherNotFound
	}
	if d.DiscountPercent == nil {
		return domainquote.Voucher{}, domainquote.ErrMalformedVoucher
	}
	return domainquote.Voucher{Code: d.Code, DiscountPercent: *d.DiscountPercent}, nil
}

var _ domainquote.Lookup = (*VoucherLookup)(nil)
