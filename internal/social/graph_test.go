package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chathub/internal/model"
)

var (
	alice = model.User{ID: "alice", DisplayName: "Alice"}
	bob   = model.User{ID: "bob", DisplayName: "Bob"}
	carol = model.User{ID: "carol", DisplayName: "Carol"}
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
}

func TestRequest_QueuesUnderRecipient(t *testing.T) {
	g := New(fixedClock)

	req := g.Request(alice, bob.ID)
	require.NotEmpty(t, req.ID)
	require.Equal(t, "alice", req.FromUserID)
	require.Equal(t, "bob", req.ToUserID)
	require.Equal(t, alice, req.From)
	require.Equal(t, fixedClock(), req.Timestamp)

	require.Equal(t, []model.FriendRequest{req}, g.Pending(bob.ID))
	require.Empty(t, g.Pending(alice.ID))
	require.Equal(t, Pending, g.State(alice.ID, bob.ID))
	require.Equal(t, None, g.State(bob.ID, alice.ID))
}

func TestAccept_LinksBothAndCreatesOneConversation(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)

	acc, ok := g.Accept(bob.ID, alice.ID)
	require.True(t, ok)
	require.True(t, acc.NewConversation)
	require.Equal(t, "alice", acc.Request.FromUserID)

	require.True(t, g.AreFriends(alice.ID, bob.ID))
	require.True(t, g.AreFriends(bob.ID, alice.ID))
	require.Equal(t, Accepted, g.State(alice.ID, bob.ID))
	require.Empty(t, g.Pending(bob.ID))

	require.Equal(t, 1, g.ConversationCount())
	for _, u := range []model.User{alice, bob} {
		convs := g.Conversations(u.ID)
		require.Len(t, convs, 1)
		require.Equal(t, acc.Conversation.ID, convs[0].ID)
	}
	require.Equal(t, "bob", acc.Conversation.Counterpart("alice"))
	require.Equal(t, "alice", acc.Conversation.Counterpart("bob"))

	conv, ok := g.Conversation(acc.Conversation.ID)
	require.True(t, ok)
	require.Equal(t, acc.Conversation, conv)
}

func TestAccept_Idempotent(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)
	_, ok := g.Accept(bob.ID, alice.ID)
	require.True(t, ok)

	_, ok = g.Accept(bob.ID, alice.ID)
	require.False(t, ok)
	require.Equal(t, 1, g.ConversationCount())
	require.Equal(t, []string{"alice"}, g.Friends(bob.ID))
	require.Equal(t, []string{"bob"}, g.Friends(alice.ID))
}

func TestAccept_WithoutRequest(t *testing.T) {
	g := New(fixedClock)

	_, ok := g.Accept(bob.ID, alice.ID)
	require.False(t, ok)
	require.False(t, g.AreFriends(alice.ID, bob.ID))
	require.Zero(t, g.ConversationCount())
}

func TestAccept_DuplicateRequestsReuseConversation(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)
	g.Request(alice, bob.ID)
	require.Len(t, g.Pending(bob.ID), 2)

	first, ok := g.Accept(bob.ID, alice.ID)
	require.True(t, ok)
	second, ok := g.Accept(bob.ID, alice.ID)
	require.True(t, ok)

	require.False(t, second.NewConversation)
	require.Equal(t, first.Conversation.ID, second.Conversation.ID)
	require.Equal(t, 1, g.ConversationCount())
	require.Len(t, g.Friends(alice.ID), 1)
}

func TestAccept_MirroredRequests(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)
	g.Request(bob, alice.ID)

	_, ok := g.Accept(bob.ID, alice.ID)
	require.True(t, ok)

	// the mirrored request stays queued until resolved
	require.Len(t, g.Pending(alice.ID), 1)
	acc, ok := g.Accept(alice.ID, bob.ID)
	require.True(t, ok)
	require.False(t, acc.NewConversation)
	require.Equal(t, 1, g.ConversationCount())
}

func TestReject(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)
	g.Request(carol, bob.ID)

	req, ok := g.Reject(bob.ID, alice.ID)
	require.True(t, ok)
	require.Equal(t, "alice", req.FromUserID)
	require.Equal(t, None, g.State(alice.ID, bob.ID))
	require.False(t, g.AreFriends(alice.ID, bob.ID))

	pending := g.Pending(bob.ID)
	require.Len(t, pending, 1)
	require.Equal(t, "carol", pending[0].FromUserID)

	_, ok = g.Reject(bob.ID, alice.ID)
	require.False(t, ok)
	require.Len(t, g.Pending(bob.ID), 1)
}

func TestPending_ReturnsCopy(t *testing.T) {
	g := New(fixedClock)
	g.Request(alice, bob.ID)

	p := g.Pending(bob.ID)
	p[0].FromUserID = "mallory"

	require.Equal(t, "alice", g.Pending(bob.ID)[0].FromUserID)
}
