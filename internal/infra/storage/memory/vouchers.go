package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

// VoucherTable is an in-memory voucher source keyed by upper-cased code.
type VoucherTable struct {
	mu       sync.RWMutex
	vouchers map[string]domainquote.Voucher
}

func NewVoucherTable(vouchers ...domainquote.Voucher) *VoucherTable {
	t := &VoucherTable{vouchers: make(map[string]domainquote.Voucher)}
	for _, v := range vouchers {
		t.Put(v)
	}
	return t
}

func (t *VoucherTable) Put(v domainquote.Voucher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vouchers[normalizeCode(v.Code)] = v
}

func (t *VoucherTable) Lookup(ctx context.Context, session auth.Session, code string) (domainquote.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return domainquote.Voucher{}, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vouchers[normalizeCode(code)]
	if !ok {
		return domainquote.Voucher{}, domainquote.ErrVoucherNotFound
	}
	return v, nil
}

type voucherFixture struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}

// LoadVouchers reads a JSON array of vouchers into the table.
func (t *VoucherTable) LoadVouchers(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read vouchers: %w", err)
	}
	var fixtures []voucherFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return 0, fmt.Errorf("decode vouchers: %w", err)
	}
	for _, f := range fixtures {
		t.Put(domainquote.Voucher{Code: normalizeCode(f.Code), DiscountPercent: f.DiscountPercent})
	}
	return len(fixtures), nil
}

// Codes lists the known codes in sorted order.
func (t *VoucherTable) Codes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return keys(t.vouchers)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var _ domainquote.Lookup = (*VoucherTable)(nil)
