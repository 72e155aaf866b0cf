// Package registry binds transient connection handles to user identities and
// keeps the directory of users that are currently known.
//
// A Registry is not safe for concurrent use; it is owned by the hub loop.
package registry

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chathub/internal/model"
)

type entry struct {
	user model.User
	seq  uint64
}

// Registry is the connection↔user table plus the known-users directory.
type Registry struct {
	online    map[string]entry      // handle -> user
	directory map[string]model.User // user id -> user
	seq       uint64
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		online:    make(map[string]entry),
		directory: make(map[string]model.User),
	}
}

// Register binds handle to a user, creating or overwriting both the online
// entry and the directory entry. An empty id is generated; an empty display
// name gets a random "User<n>" name. Registering an id that is already bound
// elsewhere moves the directory entry to handle (last registration wins).
func (r *Registry) Register(handle, displayName, id string) model.User {
	if id == "" {
		id = uuid.NewString()
	}
	if displayName == "" {
		displayName = fmt.Sprintf("User%d", rand.IntN(1000))
	}

	// 同じハンドルで別IDとして登録し直した場合、古いディレクトリ項目を外す
	if prev, ok := r.online[handle]; ok && prev.user.ID != id {
		r.dropDirectory(prev.user.ID, handle)
	}

	user := model.User{
		ID:               id,
		DisplayName:      displayName,
		Avatar:           model.AvatarURL(displayName),
		Status:           model.StatusOnline,
		ConnectionHandle: handle,
	}

	r.seq++
	r.online[handle] = entry{user: user, seq: r.seq}
	r.directory[id] = user
	return user
}

// LookupByConnection returns the user bound to handle.
func (r *Registry) LookupByConnection(handle string) (model.User, bool) {
	e, ok := r.online[handle]
	return e.user, ok
}

// LookupByID returns the directory entry for id. It only succeeds while the
// user is online.
func (r *Registry) LookupByID(id string) (model.User, bool) {
	u, ok := r.directory[id]
	return u, ok
}

// Unregister removes the online entry for handle and the user's directory
// entry, unless a later registration already moved it to another handle.
func (r *Registry) Unregister(handle string) (model.User, bool) {
	e, ok := r.online[handle]
	if !ok {
		return model.User{}, false
	}
	delete(r.online, handle)
	r.dropDirectory(e.user.ID, handle)
	return e.user, true
}

func (r *Registry) dropDirectory(id, handle string) {
	if u, ok := r.directory[id]; ok && u.ConnectionHandle == handle {
		delete(r.directory, id)
	}
}

// Online returns the presence snapshot in registration order.
func (r *Registry) Online() []model.User {
	entries := lo.Values(r.online)
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.seq, b.seq) })
	return lo.Map(entries, func(e entry, _ int) model.User { return e.user })
}

// Len returns the number of online connections bound to a user.
func (r *Registry) Len() int {
	return len(r.online)
}

// Search returns directory users whose display name contains query,
// case-insensitively, excluding excludeID. An empty query matches nothing.
func (r *Registry) Search(query, excludeID string, limit int) []model.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []model.User{}
	}

	matches := lo.Filter(lo.Values(r.directory), func(u model.User, _ int) bool {
		return u.ID != excludeID && strings.Contains(strings.ToLower(u.DisplayName), query)
	})
	slices.SortFunc(matches, func(a, b model.User) int {
		return cmp.Or(cmp.Compare(a.DisplayName, b.DisplayName), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
