package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// SortOption selects the ordering metric.
type SortOption string

const (
	SortNone          SortOption = ""
	SortMostRated     SortOption = "most-rated"
	SortLeastRated    SortOption = "least-rated"
	SortHighestRating SortOption = "highest-rating"
	SortLowestRating  SortOption = "lowest-rating"
	SortPriceLowHigh  SortOption = "price-low-high"
	SortPriceHighLow  SortOption = "price-high-low"
)

// ParseSortOption maps unknown values to SortNone.
func ParseSortOption(raw string) SortOption {
	opt := SortOption(strings.ToLower(strings.TrimSpace(raw)))
	switch opt {
	case SortMostRated, SortLeastRated, SortHighestRating, SortLowestRating, SortPriceLowHigh, SortPriceHighLow:
		return opt
	default:
		return SortNone
	}
}

// Compare orders a before b (-1), after b (1) or leaves them tied (0) for the given option.
// Unrecognized options tie every pair.
func Compare(a, b Item, option SortOption) int {
	switch option {
	case SortMostRated:
		return cmp.Compare(b.NumOfRating, a.NumOfRating)
	case SortLeastRated:
		return cmp.Compare(a.NumOfRating, b.NumOfRating)
	case SortHighestRating:
		return cmp.Compare(b.Rating, a.Rating)
	case SortLowestRating:
		return cmp.Compare(a.Rating, b.Rating)
	case SortPriceLowHigh:
		return cmp.Compare(a.Price, b.Price)
	case SortPriceHighLow:
		return cmp.Compare(b.Price, a.Price)
	default:
		return 0
	}
}

// Sort returns a stably ordered copy; ties keep their input order.
func Sort(items []Item, option SortOption) []Item {
	out := slices.Clone(items)
	option = ParseSortOption(string(option))
	if option == SortNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b Item) int { return Compare(a, b, option) })
	return out
}
