package store

import (
	"context"
	"slices"

	"chathub/internal/model"
)

// Memory keeps logs in process memory. It is not safe for concurrent use;
// the hub loop serializes access.
type Memory struct {
	logs map[string][]model.Message
}

func NewMemory() *Memory {
	return &Memory{logs: make(map[string][]model.Message)}
}

// log is the get-or-create accessor; a new room starts with an empty log.
func (m *Memory) log(roomID string) []model.Message {
	l, ok := m.logs[roomID]
	if !ok {
		l = []model.Message{}
		m.logs[roomID] = l
	}
	return l
}

func (m *Memory) Ensure(_ context.Context, roomID string) error {
	m.log(roomID)
	return nil
}

func (m *Memory) Append(_ context.Context, roomID string, msg model.Message) error {
	m.logs[roomID] = append(m.log(roomID), msg)
	return nil
}

func (m *Memory) Read(_ context.Context, roomID string) ([]model.Message, error) {
	l, ok := m.logs[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return slices.Clone(l), nil
}

func (m *Memory) Last(_ context.Context, roomID string) (model.Message, bool, error) {
	l := m.logs[roomID]
	if len(l) == 0 {
		return model.Message{}, false, nil
	}
	return l[len(l)-1], true, nil
}
