package catalog

import (
	"time"

	"homestay/internal/app/handlers/support"
	"homestay/internal/domain/auth"
	domaincatalog "homestay/internal/domain/catalog"
)

const (
	CursorIdleTTL   = 30 * time.Minute
	MaxCursorsInUse = 10000
)

// Cursors holds one browse cursor per credential holder and browse id.
type Cursors struct {
	items *support.IdleMap[domaincatalog.Cursor]
}

func NewCursors() *Cursors {
	return &Cursors{items: support.NewIdleMap[domaincatalog.Cursor](CursorIdleTTL, MaxCursorsInUse)}
}

func (c *Cursors) For(key string) *domaincatalog.Cursor {
	return c.items.Touch(key)
}

// cursorKey is "" for anonymous callers: they page statelessly.
func cursorKey(session auth.Session, browseID string) string {
	owner := session.OwnerKey()
	if browseID == "" || owner == "" {
		return ""
	}
	return owner + "/" + browseID
}
