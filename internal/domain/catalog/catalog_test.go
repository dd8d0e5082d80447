package catalog

import (
	"fmt"
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func priced(prices ...int64) []Item {
	items := make([]Item, 0, len(prices))
	for i, p := range prices {
		items = append(items, Item{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("Place %d", i+1), Price: p, MaxGuests: 2})
	}
	return items
}

func prices(items []Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.Price)
	}
	return out
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sample() []Item {
	return []Item{
		{ID: "a", Name: "Seaside Cottage", Address: "12 Beach Rd, Nha Trang", Description: "Quiet homestay near the sea", Category: "Homestay", Price: 30000, Rating: 4.5, NumOfRating: 120, MaxGuests: 4},
		{ID: "b", Name: "Old Quarter Loft", Address: "3 Hang Bac, Hanoi", Description: "Loft with rooftop", Category: "Apartment", Price: 45000, Rating: 4.8, NumOfRating: 40, MaxGuests: 2},
		{ID: "c", Name: "Mountain Retreat", Address: "Sa Pa", Description: "Wooden house, sea of clouds", Category: "homestay", Price: 20000, Rating: 3.9, NumOfRating: 300, MaxGuests: 6},
		{ID: "d", Name: "Riverside Villa", Address: "Hoi An", Description: "Pool villa", Category: "Villa", Price: 90000, Rating: 4.8, NumOfRating: 15, MaxGuests: 10},
	}
}

func TestQueryPriceRangeKeepsOrder(t *testing.T) {
	page := Query(priced(100, 200, 300, 400, 500), Criteria{PriceMin: ptr[int64](150), PriceMax: ptr[int64](450)}, SortNone, PageRequest{})
	if got := prices(page.Items); !reflect.DeepEqual(got, []int64{200, 300, 400}) {
		t.Fatalf("prices = %v", got)
	}
	if page.TotalItems != 3 || page.TotalPages != 1 {
		t.Fatalf("unexpected totals %+v", page)
	}
}

func TestQueryPriceHighLow(t *testing.T) {
	page := Query(priced(100, 200, 300, 400, 500), Criteria{}, SortPriceHighLow, PageRequest{})
	if got := prices(page.Items); !reflect.DeepEqual(got, []int64{500, 400, 300, 200, 100}) {
		t.Fatalf("prices = %v", got)
	}
}

func TestBuildPredicate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "empty matches all", criteria: Criteria{}, want: []string{"a", "b", "c", "d"}},
		{name: "whitespace term is no restriction", criteria: Criteria{SearchTerm: "   "}, want: []string{"a", "b", "c", "d"}},
		{name: "term in name", criteria: Criteria{SearchTerm: "loft"}, want: []string{"b"}},
		{name: "term in address", criteria: Criteria{SearchTerm: "HOI AN"}, want: []string{"d"}},
		{name: "term in description", criteria: Criteria{SearchTerm: "sea"}, want: []string{"a", "c"}},
		{name: "category exact case-insensitive", criteria: Criteria{Category: "HOMESTAY"}, want: []string{"a", "c"}},
		{name: "category is not substring", criteria: Criteria{Category: "home"}, want: []string{}},
		{name: "min rating inclusive", criteria: Criteria{MinRating: ptr(4.8)}, want: []string{"b", "d"}},
		{name: "min guests inclusive", criteria: Criteria{MinGuests: ptr(6)}, want: []string{"c", "d"}},
		{name: "only max price", criteria: Criteria{PriceMax: ptr[int64](30000)}, want: []string{"a", "c"}},
		{name: "combined with AND", criteria: Criteria{Category: "homestay", MinRating: ptr(4.0), PriceMin: ptr[int64](0)}, want: []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sample(), tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	criteria := []Criteria{
		{},
		{SearchTerm: "sea"},
		{Category: "homestay", MinGuests: ptr(3)},
		{PriceMin: ptr[int64](25000)},
	}
	for i, c := range criteria {
		once := Filter(sample(), c)
		twice := Filter(once, c)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("criteria %d: filter not idempotent: %v vs %v", i, ids(once), ids(twice))
		}
	}
}

func TestSortIsStable(t *testing.T) {
	items := []Item{
		{ID: "1", Price: 100, Rating: 4, NumOfRating: 10},
		{ID: "2", Price: 50, Rating: 5, NumOfRating: 10},
		{ID: "3", Price: 100, Rating: 4, NumOfRating: 5},
		{ID: "4", Price: 50, Rating: 3, NumOfRating: 10},
		{ID: "5", Price: 100, Rating: 5, NumOfRating: 5},
	}
	tests := []struct {
		option SortOption
		want   []string
	}{
		{option: SortPriceLowHigh, want: []string{"2", "4", "1", "3", "5"}},
		{option: SortPriceHighLow, want: []string{"1", "3", "5", "2", "4"}},
		{option: SortHighestRating, want: []string{"2", "5", "1", "3", "4"}},
		{option: SortLowestRating, want: []string{"4", "1", "3", "2", "5"}},
		{option: SortMostRated, want: []string{"1", "2", "4", "3", "5"}},
		{option: SortLeastRated, want: []string{"3", "5", "1", "2", "4"}},
		{option: SortNone, want: []string{"1", "2", "3", "4", "5"}},
		{option: SortOption("newest"), want: []string{"1", "2", "3", "4", "5"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			got := ids(Sort(items, tt.option))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
	if ids(items)[0] != "1" || items[1].ID != "2" {
		t.Fatal("Sort must not reorder the input slice")
	}
}

func TestSortAcceptsMixedCaseOption(t *testing.T) {
	items := []Item{{ID: "a", Price: 100}, {ID: "b", Price: 300}, {ID: "c", Price: 200}}
	if got := ids(Sort(items, SortOption("Price-High-Low"))); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("got %v", got)
	}
	if got := ids(Sort(items, SortOption(" LOWEST-RATING "))); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("ties keep input order, got %v", got)
	}
}

func TestCompareUnknownOptionTies(t *testing.T) {
	a, b := Item{Price: 1}, Item{Price: 2}
	if Compare(a, b, SortOption("bogus")) != 0 {
		t.Fatal("unknown option must tie")
	}
	if Compare(a, b, SortPriceLowHigh) != -1 || Compare(b, a, SortPriceLowHigh) != 1 {
		t.Fatal("unexpected price comparison")
	}
}

func TestParseSortOption(t *testing.T) {
	if ParseSortOption(" Price-High-Low ") != SortPriceHighLow {
		t.Fatal("expected case-insensitive parse")
	}
	if ParseSortOption("newest") != SortNone {
		t.Fatal("unknown option must parse to none")
	}
}

func TestEmptyCriteriaNoSortReturnsInput(t *testing.T) {
	items := sample()
	page := Query(items, Criteria{}, SortNone, PageRequest{})
	if !reflect.DeepEqual(page.Items, items) {
		t.Fatalf("got %v", ids(page.Items))
	}
}

func TestPaginate(t *testing.T) {
	items := priced(1, 2, 3, 4, 5, 6, 7)
	tests := []struct {
		name  string
		req   PageRequest
		want  []int64
		page  int
		pages int
	}{
		{name: "first page", req: PageRequest{Page: 1, Size: 3}, want: []int64{1, 2, 3}, page: 1, pages: 3},
		{name: "last partial page", req: PageRequest{Page: 3, Size: 3}, want: []int64{7}, page: 3, pages: 3},
		{name: "past the end clamps", req: PageRequest{Page: 9, Size: 3}, want: []int64{7}, page: 3, pages: 3},
		{name: "zero page means first", req: PageRequest{Page: 0, Size: 3}, want: []int64{1, 2, 3}, page: 1, pages: 3},
		{name: "no paging", req: PageRequest{}, want: []int64{1, 2, 3, 4, 5, 6, 7}, page: 1, pages: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.req)
			if got := prices(p.Items); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("items = %v, want %v", got, tt.want)
			}
			if p.Page != tt.page || p.TotalPages != tt.pages || p.TotalItems != 7 {
				t.Fatalf("unexpected meta %+v", p)
			}
		})
	}

	empty := Paginate(nil, PageRequest{Page: 2, Size: 10})
	if len(empty.Items) != 0 || empty.TotalPages != 0 || empty.TotalItems != 0 || empty.Page != 1 {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}

func TestCursorResetsOnCriteriaChange(t *testing.T) {
	var cursor Cursor
	base := Criteria{SearchTerm: "sea"}

	if got := cursor.Resolve(base, SortNone, 3); got != 3 {
		t.Fatalf("first request should be honoured, got %d", got)
	}
	if got := cursor.Resolve(Criteria{SearchTerm: " SEA "}, SortNone, 4); got != 4 {
		t.Fatalf("equivalent criteria must not reset, got %d", got)
	}
	if got := cursor.Resolve(Criteria{SearchTerm: "sea", MinGuests: ptr(2)}, SortNone, 4); got != 1 {
		t.Fatalf("changed criteria must reset to page 1, got %d", got)
	}
	if got := cursor.Resolve(Criteria{SearchTerm: "sea", MinGuests: ptr(2)}, SortNone, 2); got != 2 {
		t.Fatalf("paging forward, got %d", got)
	}
	if got := cursor.Resolve(Criteria{SearchTerm: "sea", MinGuests: ptr(2)}, SortPriceLowHigh, 2); got != 1 {
		t.Fatalf("changed sort must reset to page 1, got %d", got)
	}
}

func TestItemValidate(t *testing.T) {
	valid := Item{ID: "x", Price: 0, Rating: 5, NumOfRating: 0, MaxGuests: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []Item{
		{Price: 1, MaxGuests: 1},
		{ID: "x", Price: -1, MaxGuests: 1},
		{ID: "x", Rating: 5.1, MaxGuests: 1},
		{ID: "x", NumOfRating: -1, MaxGuests: 1},
		{ID: "x"},
	}
	for i, it := range bad {
		if it.Validate() == nil {
			t.Fatalf("item %d should be invalid", i)
		}
	}
}
