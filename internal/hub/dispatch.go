package hub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chathub/internal/model"
)

func (h *Hub) dispatch(ctx context.Context, handle string, cmd model.Command) {
	switch c := cmd.(type) {
	case model.Register:
		h.register(handle, c)
	case model.JoinRoom:
		if h.router.Join(handle, c.RoomID) {
			h.log.Debug("joined room", zap.String("handle", handle), zap.String("room", c.RoomID))
		}
	case model.SendMessage:
		h.sendMessage(ctx, handle, c)
	case model.StartTyping:
		h.startTyping(handle, c)
	case model.StopTyping:
		// receivers expire typing indicators on their own
	case model.RequestFriend:
		h.requestFriend(handle, c)
	case model.AcceptFriend:
		h.acceptFriend(ctx, handle, c)
	case model.RejectFriend:
		h.rejectFriend(handle, c)
	default:
		h.log.Debug("unhandled command", zap.String("handle", handle), zap.Any("command", cmd))
	}
}

func (h *Hub) register(handle string, c model.Register) {
	user := h.registry.Register(handle, c.Username, c.ID)
	h.log.Info("user registered",
		zap.String("handle", handle),
		zap.String("user", user.ID),
		zap.String("name", user.DisplayName))

	h.deliver(handle, model.Registered(user))
	h.broadcastPresence()
}

// sendMessage persists first, then publishes to the room's current members.
// A store failure is logged and the live fan-out still happens.
func (h *Hub) sendMessage(ctx context.Context, handle string, c model.SendMessage) {
	author, ok := h.registry.LookupByConnection(handle)
	if !ok {
		h.log.Debug("message from unregistered connection", zap.String("handle", handle))
		return
	}

	msg := model.Message{
		ID:           uuid.NewString(),
		AuthorUserID: author.ID,
		AuthorName:   author.DisplayName,
		RoomID:       c.RoomID,
		Text:         c.Text,
		Timestamp:    h.now().UTC(),
	}
	if err := h.store.Append(ctx, c.RoomID, msg); err != nil {
		h.log.Error("failed to store message", zap.String("room", c.RoomID), zap.String("message", msg.ID), zap.Error(err))
	}

	n := h.router.Publish(c.RoomID, model.MessageReceive(msg))
	h.log.Debug("message published", zap.String("room", c.RoomID), zap.String("user", author.ID), zap.Int("recipients", n))
}

func (h *Hub) startTyping(handle string, c model.StartTyping) {
	user, ok := h.registry.LookupByConnection(handle)
	if !ok {
		return
	}
	h.typing.Touch(c.RoomID, user.ID, user.DisplayName)
	h.router.PublishExcept(c.RoomID, handle, model.TypingUser(user.DisplayName, c.RoomID))
}

func (h *Hub) requestFriend(handle string, c model.RequestFriend) {
	sender, ok := h.registry.LookupByConnection(handle)
	if !ok {
		return
	}

	req := h.graph.Request(sender, c.TargetUserID)
	if target, online := h.registry.LookupByID(c.TargetUserID); online {
		h.deliver(target.ConnectionHandle, model.FriendRequestReceived(req))
	}
	h.deliver(handle, model.FriendRequestSent(c.TargetUserID))

	h.log.Info("friend request sent", zap.String("from", sender.ID), zap.String("to", c.TargetUserID))
}

// acceptFriend notifies the acceptor synchronously and the requester only if
// online; an offline requester learns about it from the REST listings.
func (h *Hub) acceptFriend(ctx context.Context, handle string, c model.AcceptFriend) {
	acceptor, ok := h.registry.LookupByConnection(handle)
	if !ok {
		return
	}

	acc, ok := h.graph.Accept(acceptor.ID, c.RequesterID)
	if !ok {
		h.log.Debug("no pending request to accept", zap.String("user", acceptor.ID), zap.String("requester", c.RequesterID))
		return
	}
	if acc.NewConversation {
		if err := h.store.Ensure(ctx, acc.Conversation.ID); err != nil {
			h.log.Error("failed to create conversation room", zap.String("room", acc.Conversation.ID), zap.Error(err))
		}
	}

	requester, online := h.registry.LookupByID(c.RequesterID)
	friend := acc.Request.From
	if online {
		friend = requester
	}
	h.deliver(handle, model.FriendAdded(friend, acc.Conversation.ID))
	if online {
		h.deliver(requester.ConnectionHandle, model.FriendAdded(acceptor, acc.Conversation.ID))
	}

	h.log.Info("friend request accepted",
		zap.String("user", acceptor.ID),
		zap.String("requester", c.RequesterID),
		zap.String("conversation", acc.Conversation.ID))
}

// rejectFriend only tells the rejecter; the requester is never informed.
func (h *Hub) rejectFriend(handle string, c model.RejectFriend) {
	rejecter, ok := h.registry.LookupByConnection(handle)
	if !ok {
		return
	}
	if _, ok := h.graph.Reject(rejecter.ID, c.RequesterID); !ok {
		return
	}
	h.deliver(handle, model.FriendRequestRejected(c.RequesterID))
}
