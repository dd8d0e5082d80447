package quote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"homestay/internal/domain/auth"
	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/money"
)

var today = time.Date(2024, time.November, 1, 9, 30, 0, 0, time.UTC)

func fixedEngine(lookup Lookup) Engine {
	e := NewEngine(lookup)
	e.Now = func() time.Time { return today }
	return e
}

func stayRequest(guests int, voucher string) Request {
	return Request{
		PlaceID:     "place-1",
		CheckIn:     time.Date(2024, time.November, 12, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, time.November, 14, 0, 0, 0, 0, time.UTC),
		Guests:      guests,
		NightlyRate: money.Must(10000, "USD"),
		VoucherCode: voucher,
	}
}

func tenPercent() Lookup {
	return LookupFunc(func(ctx context.Context, _ auth.Session, code string) (Voucher, error) {
		if code == "TEN" {
			return Voucher{Code: code, DiscountPercent: 10}, nil
		}
		return Voucher{}, ErrVoucherNotFound
	})
}

func TestComputeQuoteScenarios(t *testing.T) {
	tests := []struct {
		name                                      string
		req                                       Request
		nights                                    int
		subtotal, surcharge, discount, total      int64
		status                                    ResolutionStatus
	}{
		{name: "two guests no voucher", req: stayRequest(2, ""), nights: 2, subtotal: 20000, total: 20000},
		{name: "three guests surcharge", req: stayRequest(3, ""), nights: 2, subtotal: 20000, surcharge: 6000, total: 26000},
		{name: "surcharge and voucher", req: stayRequest(3, "TEN"), nights: 2, subtotal: 20000, surcharge: 6000, discount: 2600, total: 23400, status: VoucherValid},
		{name: "invalid voucher proceeds", req: stayRequest(3, "NOPE"), nights: 2, subtotal: 20000, surcharge: 6000, total: 26000, status: VoucherInvalid},
	}
	engine := fixedEngine(tenPercent())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := engine.ComputeQuote(context.Background(), auth.Anonymous, tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Nights != tt.nights {
				t.Fatalf("nights = %d, want %d", q.Nights, tt.nights)
			}
			if q.Subtotal.Amount != tt.subtotal || q.Surcharge.Amount != tt.surcharge ||
				q.Discount.Amount != tt.discount || q.Total.Amount != tt.total {
				t.Fatalf("unexpected breakdown %+v", q)
			}
			if q.VoucherStatus != tt.status {
				t.Fatalf("voucher status = %q, want %q", q.VoucherStatus, tt.status)
			}
			if q.Total.Currency != "USD" {
				t.Fatalf("currency = %q", q.Total.Currency)
			}
		})
	}
}

func TestComputeQuoteValidation(t *testing.T) {
	calls := 0
	lookup := LookupFunc(func(ctx context.Context, _ auth.Session, code string) (Voucher, error) {
		calls++
		return Voucher{Code: code, DiscountPercent: 5}, nil
	})
	engine := fixedEngine(lookup)

	sameDay := stayRequest(2, "ANY")
	sameDay.CheckOut = sameDay.CheckIn
	if _, err := engine.ComputeQuote(context.Background(), auth.Anonymous, sameDay); !errors.Is(err, daterange.ErrInvertedRange) {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}

	past := stayRequest(2, "ANY")
	past.CheckIn = today.AddDate(0, 0, -1)
	if _, err := engine.ComputeQuote(context.Background(), auth.Anonymous, past); !errors.Is(err, daterange.ErrPastCheckIn) {
		t.Fatalf("expected ErrPastCheckIn, got %v", err)
	}

	noGuests := stayRequest(0, "ANY")
	if _, err := engine.ComputeQuote(context.Background(), auth.Anonymous, noGuests); !errors.Is(err, ErrGuestCount) {
		t.Fatalf("expected ErrGuestCount, got %v", err)
	}

	tooMany := stayRequest(7, "ANY")
	tooMany.MaxGuests = 4
	if _, err := engine.ComputeQuote(context.Background(), auth.Anonymous, tooMany); !errors.Is(err, ErrGuestCount) {
		t.Fatalf("expected ErrGuestCount, got %v", err)
	}

	negative := stayRequest(2, "ANY")
	negative.NightlyRate = money.Must(-1, "USD")
	if _, err := engine.ComputeQuote(context.Background(), auth.Anonymous, negative); !errors.Is(err, ErrNegativeRate) {
		t.Fatalf("expected ErrNegativeRate, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("validation errors must not reach the lookup, got %d calls", calls)
	}
}

func TestComputeQuoteLookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	engine := fixedEngine(LookupFunc(func(context.Context, auth.Session, string) (Voucher, error) {
		return Voucher{}, boom
	}))
	_, err := engine.ComputeQuote(context.Background(), auth.Anonymous, stayRequest(2, "TEN"))
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestAggregateProperties(t *testing.T) {
	for guests := 1; guests <= 8; guests++ {
		for _, pct := range []float64{0, 1, 10, 33.3, 50, 99.99, 100} {
			for nights := 1; nights <= 30; nights += 7 {
				req := Request{Guests: guests, NightlyRate: money.Must(12345, "EUR")}
				q := Aggregate(req, nights, &Voucher{Code: "X", DiscountPercent: pct})
				if q.Subtotal.Amount != 12345*int64(nights) {
					t.Fatalf("subtotal mismatch: %+v", q)
				}
				if guests < SurchargeGuestThreshold && !q.Surcharge.IsZero() {
					t.Fatalf("unexpected surcharge for %d guests", guests)
				}
				if guests >= SurchargeGuestThreshold && q.Surcharge != q.Subtotal.Percent(30) {
					t.Fatalf("surcharge %v != 30%% of %v", q.Surcharge, q.Subtotal)
				}
				gross := q.Subtotal.Amount + q.Surcharge.Amount
				if q.Discount.Amount > gross {
					t.Fatalf("discount exceeds gross: %+v", q)
				}
				if q.Total.Amount < 0 || q.Total.Amount != gross-q.Discount.Amount {
					t.Fatalf("total invariant broken: %+v", q)
				}
			}
		}
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	req := stayRequest(4, "TEN")
	v := &Voucher{Code: "TEN", DiscountPercent: 10}
	a := Aggregate(req, 3, v)
	b := Aggregate(req, 3, v)
	if a.Total != b.Total || a.Discount != b.Discount || a.Surcharge != b.Surcharge {
		t.Fatalf("aggregate not deterministic: %+v vs %+v", a, b)
	}
	v.DiscountPercent = 90
	if a.Voucher.DiscountPercent != 10 {
		t.Fatal("quote must not alias the caller's voucher")
	}
}

func TestResolver(t *testing.T) {
	t.Run("empty code rejected locally", func(t *testing.T) {
		called := false
		r := Resolver{Lookup: LookupFunc(func(context.Context, auth.Session, string) (Voucher, error) {
			called = true
			return Voucher{}, nil
		})}
		if _, err := r.Resolve(context.Background(), auth.Anonymous, "   "); !errors.Is(err, ErrEmptyCode) {
			t.Fatalf("expected ErrEmptyCode, got %v", err)
		}
		if called {
			t.Fatal("lookup must not be called for blank codes")
		}
	})

	t.Run("malformed resolves to invalid", func(t *testing.T) {
		r := Resolver{Lookup: LookupFunc(func(context.Context, auth.Session, string) (Voucher, error) {
			return Voucher{}, ErrMalformedVoucher
		})}
		res, err := r.Resolve(context.Background(), auth.Anonymous, "CODE")
		if err != nil || res.Status != VoucherInvalid || res.Applied() != nil {
			t.Fatalf("unexpected resolution %+v, err %v", res, err)
		}
	})

	t.Run("out of range percent resolves to invalid", func(t *testing.T) {
		r := Resolver{Lookup: LookupFunc(func(_ context.Context, _ auth.Session, code string) (Voucher, error) {
			return Voucher{Code: code, DiscountPercent: 150}, nil
		})}
		res, err := r.Resolve(context.Background(), auth.Anonymous, "CODE")
		if err != nil || res.Status != VoucherInvalid {
			t.Fatalf("unexpected resolution %+v, err %v", res, err)
		}
	})

	t.Run("session forwarded and code trimmed", func(t *testing.T) {
		var gotSession auth.Session
		var gotCode string
		r := Resolver{Lookup: LookupFunc(func(_ context.Context, s auth.Session, code string) (Voucher, error) {
			gotSession, gotCode = s, code
			return Voucher{Code: code, DiscountPercent: 20}, nil
		})}
		session := auth.NewSession("tok", "user-1")
		res, err := r.Resolve(context.Background(), session, "  SUMMER ")
		if err != nil || res.Status != VoucherValid || res.Applied().DiscountPercent != 20 {
			t.Fatalf("unexpected resolution %+v, err %v", res, err)
		}
		if gotSession != session || gotCode != "SUMMER" {
			t.Fatalf("lookup got session %+v code %q", gotSession, gotCode)
		}
	})

	t.Run("missing lookup is a lookup failure", func(t *testing.T) {
		if _, err := (Resolver{}).Resolve(context.Background(), auth.Anonymous, "CODE"); !errors.Is(err, ErrLookupFailed) {
			t.Fatalf("expected ErrLookupFailed, got %v", err)
		}
	})
}

func TestValidateGuests(t *testing.T) {
	tests := []struct {
		guests, max int
		ok          bool
	}{
		{guests: 1, max: 0, ok: true},
		{guests: 0, max: 0, ok: false},
		{guests: 6, max: 4, ok: true},
		{guests: 7, max: 4, ok: false},
		{guests: 50, max: 0, ok: true},
	}
	for _, tt := range tests {
		err := ValidateGuests(tt.guests, tt.max)
		if (err == nil) != tt.ok {
			t.Fatalf("ValidateGuests(%d, %d) = %v", tt.guests, tt.max, err)
		}
	}
}

func TestRequestGuardDropsLateResponses(t *testing.T) {
	var guard RequestGuard
	first := guard.Issue()
	second := guard.Issue()

	applied := ""
	if guard.Apply(first, func() { applied = "first" }) {
		t.Fatal("stale ticket must not apply")
	}
	if !guard.Apply(second, func() { applied = "second" }) {
		t.Fatal("latest ticket must apply")
	}
	if applied != "second" {
		t.Fatalf("applied = %q", applied)
	}
}

func TestRequestGuardConcurrentIssue(t *testing.T) {
	var guard RequestGuard
	var wg sync.WaitGroup
	tickets := make(chan Ticket, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- guard.Issue()
		}()
	}
	wg.Wait()
	close(tickets)

	current := 0
	seen := make(map[Ticket]bool)
	for ticket := range tickets {
		if seen[ticket] {
			t.Fatalf("ticket %d issued twice", ticket)
		}
		seen[ticket] = true
		if guard.Current(ticket) {
			current++
		}
	}
	if current != 1 {
		t.Fatalf("expected exactly one current ticket, got %d", current)
	}
}
