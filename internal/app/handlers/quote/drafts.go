package quote

import (
	"sync"
	"time"

	"homestay/internal/app/handlers/support"
	"homestay/internal/domain/auth"
	domainquote "homestay/internal/domain/quote"
)

const (
	DraftIdleTTL   = 30 * time.Minute
	MaxDraftsInUse = 10000
)

// Drafts keeps the latest quote per booking draft. A quote computed for a superseded
// ticket is never stored over a newer one. Drafts idle for DraftIdleTTL are forgotten.
type Drafts struct {
	entries *support.IdleMap[draft]
}

type draft struct {
	guard  domainquote.RequestGuard
	mu     sync.Mutex
	latest *domainquote.Quote
}

func NewDrafts() *Drafts {
	return &Drafts{entries: support.NewIdleMap[draft](DraftIdleTTL, MaxDraftsInUse)}
}

// DraftKey scopes a client draft id to the credential holder. Anonymous callers share nothing.
func DraftKey(session auth.Session, draftID string) string {
	owner := session.OwnerKey()
	if draftID == "" || owner == "" {
		return ""
	}
	return owner + "/" + draftID
}

// Begin issues a ticket that supersedes every earlier one for key.
func (d *Drafts) Begin(key string) domainquote.Ticket {
	return d.entries.Touch(key).guard.Issue()
}

// Commit stores q when ticket is still the latest and reports whether it did.
func (d *Drafts) Commit(key string, ticket domainquote.Ticket, q domainquote.Quote) bool {
	e := d.entries.Touch(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guard.Apply(ticket, func() {
		stored := q
		e.latest = &stored
	})
}

// Latest returns the last committed quote for key.
func (d *Drafts) Latest(key string) (domainquote.Quote, bool) {
	e, ok := d.entries.Get(key)
	if !ok {
		return domainquote.Quote{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.latest == nil {
		return domainquote.Quote{}, false
	}
	return *e.latest, true
}
