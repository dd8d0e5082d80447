package mongo

import (
	"errors"
	"testing"
	"time"

	"homestay/internal/app/middleware"
	domaincatalog "homestay/internal/domain/catalog"
	domainquote "homestay/internal/domain/quote"
)

func TestPlaceDocumentRoundTrip(t *testing.T) {
	item := domaincatalog.Item{ID: "p1", Name: "Loft", Category: "Apartment", Price: 4500, Currency: "USD", Rating: 4.2, NumOfRating: 9, MaxGuests: 3}
	doc := placeFromItem(item, 7)
	if doc.Position != 7 || doc.PriceCents != 4500 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if got := doc.toItem(); got != item {
		t.Fatalf("got %+v, want %+v", got, item)
	}
}

func TestVoucherDocumentToVoucher(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	pct := 15.0
	yes, no := true, false
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	tests := []struct {
		name    string
		doc     voucherDocument
		wantErr error
	}{
		{name: "active", doc: voucherDocument{Code: "A", DiscountPercent: &pct, Active: &yes, ExpiresAt: &future}},
		{name: "no flags", doc: voucherDocument{Code: "A", DiscountPercent: &pct}},
		{name: "disabled", doc: voucherDocument{Code: "A", DiscountPercent: &pct, Active: &no}, wantErr: domainquote.ErrVoucherNotFound},
		{name: "expired", doc: voucherDocument{Code: "A", DiscountPercent: &pct, ExpiresAt: &past}, wantErr: domainquote.ErrVoucherNotFound},
		{name: "missing percent", doc: voucherDocument{Code: "A"}, wantErr: domainquote.ErrMalformedVoucher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.doc.toVoucher(now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || v.DiscountPercent != pct {
				t.Fatalf("unexpected %+v %v", v, err)
			}
		})
	}
}

func TestIdempotencyDocumentClaims(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		doc       idempotencyDocument
		abandoned bool
	}{
		{name: "fresh claim", doc: idempotencyDocument{Key: "k", Pending: true, OccurredAt: now.Add(-time.Second)}},
		{name: "expired claim", doc: idempotencyDocument{Key: "k", Pending: true, OccurredAt: now.Add(-middleware.ReservationLease - time.Second)}, abandoned: true},
		{name: "old finished record", doc: idempotencyDocument{Key: "k", Payload: []byte(`{}`), OccurredAt: now.Add(-24 * time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.abandoned(now); got != tt.abandoned {
				t.Fatalf("abandoned = %v, want %v", got, tt.abandoned)
			}
			if rec := tt.doc.toRecord(); rec.Pending != tt.doc.Pending || rec.Key != "k" {
				t.Fatalf("unexpected record %+v", rec)
			}
		})
	}
}
