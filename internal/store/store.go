// Package store holds the append-only per-room message logs.
package store

import (
	"context"
	"errors"

	"chathub/internal/model"
)

// ErrRoomNotFound is returned by reads of a room that has no log.
var ErrRoomNotFound = errors.New("room not found")

// MessageStore is the per-room message log. Logs are created lazily by
// Append or explicitly by Ensure, never evicted, and read oldest first.
type MessageStore interface {
	Ensure(ctx context.Context, roomID string) error
	Append(ctx context.Context, roomID string, msg model.Message) error
	Read(ctx context.Context, roomID string) ([]model.Message, error)
	Last(ctx context.Context, roomID string) (model.Message, bool, error)
}
