package ginserver

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field)
}

func optionalInt64(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", field)
	}
	return &v, nil
}

func optionalInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", field)
	}
	return &v, nil
}

func optionalFloat(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	return &v, nil
}

func intOrZero(field, raw string) (int, error) {
	v, err := optionalInt(field, raw)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}
