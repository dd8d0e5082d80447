package daterange

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvertedRange = errors.New("daterange: check-out must be after check-in")
	ErrPastCheckIn   = errors.New("daterange: check-in date is in the past")
)

const day = 24 * time.Hour

// DateRange represents a stay as a half-open interval [checkIn, checkOut) of calendar days in UTC.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New truncates both ends to the calendar day and checks ordering.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: TruncateDay(checkIn), CheckOut: TruncateDay(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Validate reports ErrInvertedRange unless check-out falls on a later day than check-in.
func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvertedRange
	}
	if !TruncateDay(dr.CheckOut).After(TruncateDay(dr.CheckIn)) {
		return ErrInvertedRange
	}
	return nil
}

// Nights is the single night-count rule: calendar nights between the two dates, no extra increment.
func (dr DateRange) Nights() int {
	diff := TruncateDay(dr.CheckOut).Sub(TruncateDay(dr.CheckIn))
	return int(math.Round(float64(diff) / float64(day)))
}

// ValidateStay runs the full check used before quoting: ordering first, then check-in vs today.
func ValidateStay(checkIn, checkOut, today time.Time) (DateRange, error) {
	if TruncateDay(checkIn).Before(TruncateDay(today)) {
		return DateRange{}, ErrPastCheckIn
	}
	return New(checkIn, checkOut)
}

// Validate is the functional form returning only the night count.
func Validate(checkIn, checkOut, today time.Time) (int, error) {
	dr, err := ValidateStay(checkIn, checkOut, today)
	if err != nil {
		return 0, err
	}
	return dr.Nights(), nil
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = TruncateDay(t)
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

// TruncateDay drops the time of day, interpreting the instant in UTC.
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
