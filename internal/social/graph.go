// Package social holds the friend-request lifecycle, the friendship graph and
// the direct-message conversations created from it.
//
// Per ordered pair (from, to) the state moves NONE → PENDING on a request and
// PENDING → ACCEPTED or back to NONE on accept/reject. Friendships and
// conversations are never removed.
//
// A Graph is not safe for concurrent use; it is owned by the hub loop.
package social

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chathub/internal/model"
)

// State is the request state of a pair.
type State string

const (
	None     State = "NONE"
	Pending  State = "PENDING"
	Accepted State = "ACCEPTED"
)

type pair struct{ a, b string }

func pairOf(x, y string) pair {
	if x > y {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// Acceptance is the outcome of an accepted request.
type Acceptance struct {
	Request      model.FriendRequest
	Conversation model.Conversation
	// NewConversation is false when the pair already had a conversation.
	NewConversation bool
}

// Graph is the friend graph plus pending requests and conversations.
type Graph struct {
	pending       map[string][]model.FriendRequest // recipient id -> queue
	friends       map[string][]string              // user id -> friend ids, in acceptance order
	conversations map[string]model.Conversation
	byUser        map[string][]string // user id -> conversation ids
	byPair        map[pair]string     // pair -> conversation id
	now           func() time.Time
}

// New creates an empty Graph. A nil clock means time.Now.
func New(now func() time.Time) *Graph {
	if now == nil {
		now = time.Now
	}
	return &Graph{
		pending:       make(map[string][]model.FriendRequest),
		friends:       make(map[string][]string),
		conversations: make(map[string]model.Conversation),
		byUser:        make(map[string][]string),
		byPair:        make(map[pair]string),
		now:           now,
	}
}

// Request queues a request from from to toID. Duplicate and mirrored
// requests are queued as they come.
func (g *Graph) Request(from model.User, toID string) model.FriendRequest {
	req := model.FriendRequest{
		ID:         uuid.NewString(),
		FromUserID: from.ID,
		ToUserID:   toID,
		From:       from,
		Timestamp:  g.now().UTC(),
	}
	g.pending[toID] = append(g.pending[toID], req)
	return req
}

// take removes the oldest pending request from requesterID to recipientID.
func (g *Graph) take(recipientID, requesterID string) (model.FriendRequest, bool) {
	queue := g.pending[recipientID]
	i := slices.IndexFunc(queue, func(r model.FriendRequest) bool { return r.FromUserID == requesterID })
	if i < 0 {
		return model.FriendRequest{}, false
	}
	req := queue[i]
	queue = slices.Delete(queue, i, i+1)
	if len(queue) == 0 {
		delete(g.pending, recipientID)
	} else {
		g.pending[recipientID] = queue
	}
	return req, true
}

// Accept resolves the request from requesterID to acceptorID. It links both
// users and returns the pair's conversation, creating it the first time.
// Without a matching pending request nothing changes and ok is false.
func (g *Graph) Accept(acceptorID, requesterID string) (Acceptance, bool) {
	req, ok := g.take(acceptorID, requesterID)
	if !ok {
		return Acceptance{}, false
	}

	g.link(acceptorID, requesterID)
	g.link(requesterID, acceptorID)

	conv, created := g.conversationFor(acceptorID, requesterID)
	return Acceptance{Request: req, Conversation: conv, NewConversation: created}, true
}

// Reject drops the request from requesterID to rejecterID. Without a
// matching pending request nothing changes and ok is false.
func (g *Graph) Reject(rejecterID, requesterID string) (model.FriendRequest, bool) {
	return g.take(rejecterID, requesterID)
}

func (g *Graph) link(from, to string) {
	if !slices.Contains(g.friends[from], to) {
		g.friends[from] = append(g.friends[from], to)
	}
}

func (g *Graph) conversationFor(x, y string) (model.Conversation, bool) {
	key := pairOf(x, y)
	if id, ok := g.byPair[key]; ok {
		return g.conversations[id], false
	}

	conv := model.Conversation{
		ID:           uuid.NewString(),
		Participants: [2]string{x, y},
		CreatedAt:    g.now().UTC(),
	}
	g.conversations[conv.ID] = conv
	g.byPair[key] = conv.ID
	g.byUser[x] = append(g.byUser[x], conv.ID)
	if y != x {
		g.byUser[y] = append(g.byUser[y], conv.ID)
	}
	return conv, true
}

// State returns the request state from → to.
func (g *Graph) State(from, to string) State {
	if g.AreFriends(from, to) {
		return Accepted
	}
	if slices.ContainsFunc(g.pending[to], func(r model.FriendRequest) bool { return r.FromUserID == from }) {
		return Pending
	}
	return None
}

// AreFriends reports whether a and b share a friendship edge.
func (g *Graph) AreFriends(a, b string) bool {
	return slices.Contains(g.friends[a], b)
}

// Pending returns the requests waiting on userID, oldest first.
func (g *Graph) Pending(userID string) []model.FriendRequest {
	return append([]model.FriendRequest{}, g.pending[userID]...)
}

// Friends returns the friend ids of userID.
func (g *Graph) Friends(userID string) []string {
	return append([]string{}, g.friends[userID]...)
}

// Conversations returns the conversations userID takes part in.
func (g *Graph) Conversations(userID string) []model.Conversation {
	return lo.Map(g.byUser[userID], func(id string, _ int) model.Conversation {
		return g.conversations[id]
	})
}

// Conversation looks up a conversation by id.
func (g *Graph) Conversation(id string) (model.Conversation, bool) {
	c, ok := g.conversations[id]
	return c, ok
}

// ConversationCount returns the number of conversations ever created.
func (g *Graph) ConversationCount() int {
	return len(g.conversations)
}
