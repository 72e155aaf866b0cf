package model

// Server→client event kinds.
const (
	EventRegistered            = "registered"
	EventPresenceUpdate        = "presence:update"
	EventMessageReceive        = "message:receive"
	EventTypingUser            = "typing:user"
	EventFriendRequestReceived = "friend:request:received"
	EventFriendRequestSent     = "friend:request:sent"
	EventFriendAdded           = "friend:added"
	EventFriendRequestRejected = "friend:request:rejected"
	EventChannelCreated        = "channel:created"
	EventChannelDeleted        = "channel:deleted"
)

// Event is an outbound frame. Payload is one of the *Payload types below.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type RegisteredPayload struct {
	User User `json:"user"`
}

type PresencePayload struct {
	Users []User `json:"users"`
}

type MessagePayload struct {
	Message Message `json:"message"`
}

type TypingPayload struct {
	DisplayName string `json:"displayName"`
	RoomID      string `json:"roomId"`
}

type FriendRequestReceivedPayload struct {
	Request FriendRequest `json:"request"`
}

type FriendRequestSentPayload struct {
	TargetUserID string `json:"targetUserId"`
}

type FriendAddedPayload struct {
	Friend         User   `json:"friend"`
	ConversationID string `json:"conversationId"`
}

type FriendRequestRejectedPayload struct {
	RequesterID string `json:"requesterId"`
}

type ChannelCreatedPayload struct {
	ServerID string  `json:"serverId"`
	Channel  Channel `json:"channel"`
}

type ChannelDeletedPayload struct {
	ServerID  string `json:"serverId"`
	ChannelID string `json:"channelId"`
}

func Registered(u User) Event {
	return Event{Type: EventRegistered, Payload: RegisteredPayload{User: u}}
}

func PresenceUpdate(users []User) Event {
	if users == nil {
		users = []User{}
	}
	return Event{Type: EventPresenceUpdate, Payload: PresencePayload{Users: users}}
}

func MessageReceive(m Message) Event {
	return Event{Type: EventMessageReceive, Payload: MessagePayload{Message: m}}
}

func TypingUser(displayName, roomID string) Event {
	return Event{Type: EventTypingUser, Payload: TypingPayload{DisplayName: displayName, RoomID: roomID}}
}

func FriendRequestReceived(r FriendRequest) Event {
	return Event{Type: EventFriendRequestReceived, Payload: FriendRequestReceivedPayload{Request: r}}
}

func FriendRequestSent(targetUserID string) Event {
	return Event{Type: EventFriendRequestSent, Payload: FriendRequestSentPayload{TargetUserID: targetUserID}}
}

func FriendAdded(friend User, conversationID string) Event {
	return Event{Type: EventFriendAdded, Payload: FriendAddedPayload{Friend: friend, ConversationID: conversationID}}
}

func FriendRequestRejected(requesterID string) Event {
	return Event{Type: EventFriendRequestRejected, Payload: FriendRequestRejectedPayload{RequesterID: requesterID}}
}

func ChannelCreated(serverID string, ch Channel) Event {
	return Event{Type: EventChannelCreated, Payload: ChannelCreatedPayload{ServerID: serverID, Channel: ch}}
}

func ChannelDeleted(serverID, channelID string) Event {
	return Event{Type: EventChannelDeleted, Payload: ChannelDeletedPayload{ServerID: serverID, ChannelID: channelID}}
}
