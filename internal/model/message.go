package model

import "time"

// Message represents a chat message posted to a room. Messages are immutable.
type Message struct {
	ID           string    `json:"id"`
	AuthorUserID string    `json:"authorUserId"`
	AuthorName   string    `json:"authorName"`
	RoomID       string    `json:"roomId"`
	Text         string    `json:"text"`
	Timestamp    time.Time `json:"timestamp"`
}
