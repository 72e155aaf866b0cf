package model

import "time"

// FriendRequest is a pending one-directional request, queued under its
// recipient until accepted or rejected.
type FriendRequest struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	From       User      `json:"from"`
	Timestamp  time.Time `json:"timestamp"`
}

// Conversation is the direct-message room created for a friendship.
type Conversation struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Counterpart returns the participant that is not userID.
func (c Conversation) Counterpart(userID string) string {
	if c.Participants[0] == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// ConversationSummary is a conversation as listed for one participant.
type ConversationSummary struct {
	ID          string   `json:"id"`
	User        *User    `json:"user,omitempty"`
	LastMessage *Message `json:"lastMessage,omitempty"`
}
