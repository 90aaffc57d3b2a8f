package conversation

import (
	"strings"
	"sync"
	"time"
)

const (
	duplicateWindow   = 5 * time.Second
	evictionThreshold = 100
	evictionAge       = 60 * time.Second
)

// DuplicateGuard suppresses reprocessing of an identical message from the
// same contact within a short window. It runs before any other handling,
// including the reset keyword check.
type DuplicateGuard struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	now      func() time.Time
}

func NewDuplicateGuard() *DuplicateGuard {
	return &DuplicateGuard{
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// IsDuplicate reports whether the same (contact, trimmed body) pair was seen
// within the duplicate window, recording this sighting either way.
func (g *DuplicateGuard) IsDuplicate(contact, body string) bool {
	key := contact + "|" + strings.TrimSpace(body)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	seen, ok := g.lastSeen[key]
	if ok && now.Sub(seen) < duplicateWindow {
		return true
	}
	g.lastSeen[key] = now

	if len(g.lastSeen) > evictionThreshold {
		for k, t := range g.lastSeen {
			if now.Sub(t) > evictionAge {
				delete(g.lastSeen, k)
			}
		}
	}
	return false
}
