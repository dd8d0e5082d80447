package quote

import "sync/atomic"

// Ticket identifies one issued request.
type Ticket uint64

// RequestGuard discards late responses: only the most recently issued ticket may apply its result.
type RequestGuard struct {
	latest atomic.Uint64
}

// Issue invalidates every earlier ticket.
func (g *RequestGuard) Issue() Ticket {
	return Ticket(g.latest.Add(1))
}

// Current reports whether t is still the latest ticket.
func (g *RequestGuard) Current(t Ticket) bool {
	return uint64(t) == g.latest.Load()
}

// Apply runs fn only when t is current and reports whether it ran.
// A ticket issued while fn runs does not interrupt it; the newer response applies afterwards.
func (g *RequestGuard) Apply(t Ticket, fn func()) bool {
	if !g.Current(t) {
		return false
	}
	fn()
	return true
}
