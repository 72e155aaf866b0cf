package hub

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chathub/internal/model"
)

// CreateChannel adds a channel to serverID, creates its room and announces
// it to every connection.
func (h *Hub) CreateChannel(ctx context.Context, serverID string, req model.CreateChannelRequest) (model.Channel, error) {
	var (
		ch    model.Channel
		found bool
	)
	err := h.do(ctx, func(ctx context.Context) {
		ch, found = h.catalog.CreateChannel(serverID, req.Name, req.Type)
		if !found {
			return
		}
		if err := h.store.Ensure(ctx, ch.ID); err != nil {
			h.log.Error("failed to create channel room", zap.String("room", ch.ID), zap.Error(err))
		}
		h.broadcast(model.ChannelCreated(serverID, ch))
		h.log.Info("channel created", zap.String("server", serverID), zap.String("channel", ch.ID), zap.String("name", ch.Name))
	})
	if err != nil {
		return model.Channel{}, err
	}
	if !found {
		return model.Channel{}, fmt.Errorf("%w: %s", ErrServerNotFound, serverID)
	}
	return ch, nil
}

// DeleteChannel removes a channel and announces it. The room's messages are
// kept.
func (h *Hub) DeleteChannel(ctx context.Context, serverID, channelID string) error {
	var deleted bool
	err := h.do(ctx, func(context.Context) {
		deleted = h.catalog.DeleteChannel(serverID, channelID)
		if !deleted {
			return
		}
		h.broadcast(model.ChannelDeleted(serverID, channelID))
		h.log.Info("channel deleted", zap.String("server", serverID), zap.String("channel", channelID))
	})
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s/%s", ErrChannelNotFound, serverID, channelID)
	}
	return nil
}
