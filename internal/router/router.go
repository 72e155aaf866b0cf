// Package router tracks room membership and fans events out to members.
//
// A Router is not safe for concurrent use; it is owned by the hub loop, which
// is what makes publish order per room the delivery order for every member.
package router

import "chathub/internal/model"

// Deliverer queues an event for one connection.
type Deliverer interface {
	Deliver(handle string, ev model.Event)
}

// Router maps rooms to the connections joined to them.
type Router struct {
	out    Deliverer
	rooms  map[string]map[string]struct{} // room id -> handles
	joined map[string]map[string]struct{} // handle -> room ids
}

// New creates a Router delivering through out.
func New(out Deliverer) *Router {
	return &Router{
		out:    out,
		rooms:  make(map[string]map[string]struct{}),
		joined: make(map[string]map[string]struct{}),
	}
}

// Join adds handle to roomID. It is idempotent and reports whether the
// membership is new.
func (r *Router) Join(handle, roomID string) bool {
	members := r.members(roomID)
	if _, ok := members[handle]; ok {
		return false
	}
	members[handle] = struct{}{}

	rooms, ok := r.joined[handle]
	if !ok {
		rooms = make(map[string]struct{})
		r.joined[handle] = rooms
	}
	rooms[roomID] = struct{}{}
	return true
}

// members is the get-or-create accessor for a room's member set; a room
// nobody has joined yet has an empty set.
func (r *Router) members(roomID string) map[string]struct{} {
	m, ok := r.rooms[roomID]
	if !ok {
		m = make(map[string]struct{})
		r.rooms[roomID] = m
	}
	return m
}

// IsMember reports whether handle has joined roomID.
func (r *Router) IsMember(handle, roomID string) bool {
	_, ok := r.rooms[roomID][handle]
	return ok
}

// Members returns the handles currently joined to roomID.
func (r *Router) Members(roomID string) []string {
	handles := make([]string, 0, len(r.rooms[roomID]))
	for h := range r.rooms[roomID] {
		handles = append(handles, h)
	}
	return handles
}

// Publish delivers ev to every connection joined to roomID and returns the
// number of recipients. It has no persistence side effect.
func (r *Router) Publish(roomID string, ev model.Event) int {
	return r.PublishExcept(roomID, "", ev)
}

// PublishExcept is Publish with one handle excluded.
func (r *Router) PublishExcept(roomID, except string, ev model.Event) int {
	n := 0
	for h := range r.rooms[roomID] {
		if h == except {
			continue
		}
		r.out.Deliver(h, ev)
		n++
	}
	return n
}

// Drop removes handle from every room it joined. Memberships lapse only
// when the connection closes.
func (r *Router) Drop(handle string) {
	for roomID := range r.joined[handle] {
		delete(r.rooms[roomID], handle)
		if len(r.rooms[roomID]) == 0 {
			delete(r.rooms, roomID)
		}
	}
	delete(r.joined, handle)
}
