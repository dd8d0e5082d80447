package voucher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

// HTTPLookup fetches vouchers from the remote REST endpoint GET {BaseURL}/vouchers/{code}.
// The caller's session token is forwarded as a bearer header.
type HTTPLookup struct {
	Client  *http.Client
	BaseURL string
	Logger  *slog.Logger
}

func NewHTTPLookup(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPLookup {
	return &HTTPLookup{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  logger,
	}
}

type voucherResponse struct {
	Code            string   `json:"code"`
	DiscountPercent *float64 `json:"discount_percent"`
}

func (l *HTTPLookup) Lookup(ctx context.Context, session auth.Session, code string) (domainquote.Voucher, error) {
	var zero domainquote.Voucher
	if l == nil || l.Client == nil {
		return zero, errors.New("voucher: http client not configured")
	}
	if l.BaseURL == "" {
		return zero, errors.New("voucher: endpoint not configured")
	}

	endpoint := l.BaseURL + "/vouchers/" + url.PathEscape(code)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	request.Header.Set("Accept", "application/json")
	if header := session.BearerHeader(); header != "" {
		request.Header.Set("Authorization", header)
	}

	resp, err := l.Client.Do(request)
	if err != nil {
		l.logError(ctx, "voucher request failed", code, err)
		return zero, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone,
		resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return zero, domainquote.ErrVoucherNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("voucher service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		l.logError(ctx, "voucher service returned error", code, err)
		return zero, err
	}

	var payload voucherResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return zero, fmt.Errorf("%w: %v", domainquote.ErrMalformedVoucher, err)
	}
	if payload.DiscountPercent == nil {
		return zero, fmt.Errorf("%w: discount_percent missing", domainquote.ErrMalformedVoucher)
	}
	voucherCode := strings.TrimSpace(payload.Code)
	if voucherCode == "" {
		voucherCode = code
	}
	return domainquote.Voucher{Code: voucherCode, DiscountPercent: *payload.DiscountPercent}, nil
}

func (l *HTTPLookup) logError(ctx context.Context, msg, code string, err error) {
	if l.Logger == nil {
		return
	}
	l.Logger.WarnContext(ctx, msg, "code", code, "error", err)
}

var _ domainquote.Lookup = (*HTTPLookup)(nil)
