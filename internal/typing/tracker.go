// Package typing keeps the ephemeral "is typing" state as one expiring-entry
// cache keyed by (room, user). Entries are swept lazily; there is no timer per
// signal and no explicit stop.
package typing

import (
	"slices"
	"time"
)

// DefaultTTL is how long a typing signal stays visible without a refresh.
const DefaultTTL = 2 * time.Second

type key struct {
	room string
	user string
}

type entry struct {
	displayName string
	deadline    time.Time
}

// Tracker is not safe for concurrent use; it is owned by the hub loop.
type Tracker struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[key]entry
}

// New creates a Tracker. Non-positive ttl means DefaultTTL; nil now means
// time.Now.
func New(ttl time.Duration, now func() time.Time) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Tracker{ttl: ttl, now: now, entries: make(map[key]entry)}
}

// Touch records that userID is typing in roomID, extending the deadline.
func (t *Tracker) Touch(roomID, userID, displayName string) {
	t.Sweep()
	t.entries[key{room: roomID, user: userID}] = entry{
		displayName: displayName,
		deadline:    t.now().Add(t.ttl),
	}
}

// Active returns the display names typing in roomID, sorted.
func (t *Tracker) Active(roomID string) []string {
	t.Sweep()
	names := []string{}
	for k, e := range t.entries {
		if k.room == roomID {
			names = append(names, e.displayName)
		}
	}
	slices.Sort(names)
	return names
}

// Sweep drops expired entries and returns how many were removed.
func (t *Tracker) Sweep() int {
	now := t.now()
	n := 0
	for k, e := range t.entries {
		if !now.Before(e.deadline) {
			delete(t.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of live entries, expired ones included until the
// next sweep.
func (t *Tracker) Len() int {
	return len(t.entries)
}
