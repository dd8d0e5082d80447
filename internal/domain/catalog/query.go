package catalog

import "sync"

const DefaultPageSize = 20

// PageRequest selects a 1-based page. Size <= 0 disables paging.
type PageRequest struct {
	Page int
	Size int
}

// Page is the result of one catalog query.
type Page struct {
	Items      []Item
	TotalItems int
	TotalPages int
	Page       int
	Size       int
}

// Query filters, then sorts, then slices. It is recomputed in full on every call: fine for
// catalogs in the hundreds, linear in catalog size beyond that.
func Query(items []Item, criteria Criteria, option SortOption, page PageRequest) Page {
	ordered := Sort(Filter(items, criteria), option)
	return Paginate(ordered, page)
}

// Paginate slices an already ordered list. Pages past the end clamp to the last page.
func Paginate(items []Item, req PageRequest) Page {
	total := len(items)
	if req.Size <= 0 {
		pages := 1
		if total == 0 {
			pages = 0
		}
		return Page{Items: items, TotalItems: total, TotalPages: pages, Page: 1, Size: total}
	}
	pages := (total + req.Size - 1) / req.Size
	current := req.Page
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = max(pages, 1)
	}
	start := (current - 1) * req.Size
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}
	return Page{
		Items:      items[start:end],
		TotalItems: total,
		TotalPages: pages,
		Page:       current,
		Size:       req.Size,
	}
}

// Cursor remembers the last criteria and sort a client paged through and resets to page 1
// whenever either changes.
type Cursor struct {
	mu       sync.Mutex
	criteria Criteria
	option   SortOption
	page     int
	started  bool
}

// Resolve returns the page to serve for the requested one.
func (c *Cursor) Resolve(criteria Criteria, option SortOption, requested int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := c.started && (!c.criteria.Equal(criteria) || c.option != option)
	c.criteria = criteria.clone()
	c.option = option
	c.started = true
	if changed || requested < 1 {
		c.page = 1
		return c.page
	}
	c.page = requested
	return c.page
}
