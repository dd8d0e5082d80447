package catalog

import "strings"

// Criteria narrows the catalog. A nil pointer or empty string leaves that dimension unrestricted.
type Criteria struct {
	SearchTerm string
	Category   string
	PriceMin   *int64
	PriceMax   *int64
	MinRating  *float64
	MinGuests  *int
}

// Normalized trims the text fields so that whitespace-only input counts as absent.
func (c Criteria) Normalized() Criteria {
	c.SearchTerm = strings.TrimSpace(c.SearchTerm)
	c.Category = strings.TrimSpace(c.Category)
	return c
}

// IsEmpty reports whether the criteria restrict nothing.
func (c Criteria) IsEmpty() bool {
	n := c.Normalized()
	return n.SearchTerm == "" && n.Category == "" && n.PriceMin == nil && n.PriceMax == nil &&
		n.MinRating == nil && n.MinGuests == nil
}

// Equal compares criteria by value.
func (c Criteria) Equal(other Criteria) bool {
	a, b := c.Normalized(), other.Normalized()
	return strings.EqualFold(a.SearchTerm, b.SearchTerm) &&
		strings.EqualFold(a.Category, b.Category) &&
		equalPtr(a.PriceMin, b.PriceMin) &&
		equalPtr(a.PriceMax, b.PriceMax) &&
		equalPtr(a.MinRating, b.MinRating) &&
		equalPtr(a.MinGuests, b.MinGuests)
}

func (c Criteria) clone() Criteria {
	c.PriceMin = clonePtr(c.PriceMin)
	c.PriceMax = clonePtr(c.PriceMax)
	c.MinRating = clonePtr(c.MinRating)
	c.MinGuests = clonePtr(c.MinGuests)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Predicate decides whether an item belongs in the result.
type Predicate func(Item) bool

// BuildPredicate compiles criteria into one predicate. Provided dimensions are ANDed;
// empty criteria yield a predicate that matches everything.
func BuildPredicate(criteria Criteria) Predicate {
	c := criteria.Normalized()
	var checks []Predicate

	if c.SearchTerm != "" {
		needle := strings.ToLower(c.SearchTerm)
		checks = append(checks, func(it Item) bool {
			return strings.Contains(strings.ToLower(it.Name), needle) ||
				strings.Contains(strings.ToLower(it.Address), needle) ||
				strings.Contains(strings.ToLower(it.Description), needle)
		})
	}
	if c.Category != "" {
		category := c.Category
		checks = append(checks, func(it Item) bool {
			return strings.EqualFold(strings.TrimSpace(it.Category), category)
		})
	}
	if c.PriceMin != nil {
		floor := *c.PriceMin
		checks = append(checks, func(it Item) bool { return it.Price >= floor })
	}
	if c.PriceMax != nil {
		ceiling := *c.PriceMax
		checks = append(checks, func(it Item) bool { return it.Price <= ceiling })
	}
	if c.MinRating != nil {
		floor := *c.MinRating
		checks = append(checks, func(it Item) bool { return it.Rating >= floor })
	}
	if c.MinGuests != nil {
		floor := *c.MinGuests
		checks = append(checks, func(it Item) bool { return it.MaxGuests >= floor })
	}

	return func(it Item) bool {
		for _, check := range checks {
			if !check(it) {
				return false
			}
		}
		return true
	}
}

// Filter returns the matching items in input order. The input slice is not modified.
func Filter(items []Item, criteria Criteria) []Item {
	match := BuildPredicate(criteria)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
