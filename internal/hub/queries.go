package hub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"chathub/internal/model"
	"chathub/internal/store"
)

// Read-side queries. They run on the loop like every command, so a read never
// observes a half-applied update.

// Health is the liveness summary.
type Health struct {
	Status        string    `json:"status"`
	Users         int       `json:"users"`
	Connections   int       `json:"connections"`
	Conversations int       `json:"conversations"`
	Timestamp     time.Time `json:"timestamp"`
}

func (h *Hub) Health(ctx context.Context) (Health, error) {
	var out Health
	err := h.do(ctx, func(context.Context) {
		out = Health{
			Status:        "ok",
			Users:         h.registry.Len(),
			Connections:   len(h.conns),
			Conversations: h.graph.ConversationCount(),
			Timestamp:     h.now().UTC(),
		}
	})
	return out, err
}

func (h *Hub) Servers(ctx context.Context) ([]model.Server, error) {
	var out []model.Server
	err := h.do(ctx, func(context.Context) {
		out = h.catalog.Servers()
	})
	return out, err
}

func (h *Hub) Channels(ctx context.Context, serverID string) ([]model.Channel, error) {
	var (
		out   []model.Channel
		found bool
	)
	err := h.do(ctx, func(context.Context) {
		out, found = h.catalog.Channels(serverID)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrServerNotFound, serverID)
	}
	return out, nil
}

// Messages returns the full log of roomID, oldest first. Channels and
// conversations that have no messages yet read as empty.
func (h *Hub) Messages(ctx context.Context, roomID string) ([]model.Message, error) {
	var (
		out     []model.Message
		readErr error
	)
	err := h.do(ctx, func(ctx context.Context) {
		out, readErr = h.store.Read(ctx, roomID)
		if errors.Is(readErr, store.ErrRoomNotFound) {
			_, isConversation := h.graph.Conversation(roomID)
			if isConversation || h.catalog.IsChannel(roomID) {
				out, readErr = []model.Message{}, nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if errors.Is(readErr, store.ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read messages of %s: %w", roomID, readErr)
	}
	return out, nil
}

// Typing returns the display names currently typing in roomID.
func (h *Hub) Typing(ctx context.Context, roomID string) ([]string, error) {
	var out []string
	err := h.do(ctx, func(context.Context) {
		out = h.typing.Active(roomID)
	})
	return out, err
}

// SearchUsers matches known users by display-name substring, excluding
// excludeID, capped at SearchLimit.
func (h *Hub) SearchUsers(ctx context.Context, query, excludeID string) ([]model.User, error) {
	var out []model.User
	err := h.do(ctx, func(context.Context) {
		out = h.registry.Search(query, excludeID, SearchLimit)
	})
	return out, err
}

func (h *Hub) OnlineUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := h.do(ctx, func(context.Context) {
		out = h.registry.Online()
	})
	return out, err
}

// Friends returns the friends of userID that are in the directory. Offline
// friends are left out.
func (h *Hub) Friends(ctx context.Context, userID string) ([]model.User, error) {
	var out []model.User
	err := h.do(ctx, func(context.Context) {
		out = lo.FilterMap(h.graph.Friends(userID), func(id string, _ int) (model.User, bool) {
			return h.registry.LookupByID(id)
		})
	})
	return out, err
}

func (h *Hub) FriendRequests(ctx context.Context, userID string) ([]model.FriendRequest, error) {
	var out []model.FriendRequest
	err := h.do(ctx, func(context.Context) {
		out = h.graph.Pending(userID)
	})
	return out, err
}

// Conversations lists userID's conversations with the counterpart (absent
// while offline) and the last message.
func (h *Hub) Conversations(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	var out []model.ConversationSummary
	err := h.do(ctx, func(ctx context.Context) {
		convs := h.graph.Conversations(userID)
		out = make([]model.ConversationSummary, 0, len(convs))
		for _, conv := range convs {
			summary := model.ConversationSummary{ID: conv.ID}
			if u, ok := h.registry.LookupByID(conv.Counterpart(userID)); ok {
				summary.User = &u
			}
			last, ok, err := h.store.Last(ctx, conv.ID)
			if err != nil {
				h.log.Error("failed to read last message", zap.String("room", conv.ID), zap.Error(err))
			} else if ok {
				summary.LastMessage = &last
			}
			out = append(out, summary)
		}
	})
	return out, err
}
