package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Client→server command kinds.
const (
	CommandRegister         = "register"
	CommandRoomJoin         = "room:join"
	CommandChannelJoin      = "channel:join"
	CommandConversationJoin = "conversation:join"
	CommandMessageSend      = "message:send"
	CommandTypingStart      = "typing:start"
	CommandTypingStop       = "typing:stop"
	CommandFriendRequest    = "friend:request"
	CommandFriendAccept     = "friend:accept"
	CommandFriendReject     = "friend:reject"
)

// MaxTextLength bounds the text of a single message.
const MaxTextLength = 5000

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidPayload = errors.New("invalid payload")
)

var validate = validator.New()

// Frame is an inbound frame before it is decoded into a Command.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Command is the closed set of client→server commands.
type Command interface {
	command()
}

type Register struct {
	Username string `json:"username" validate:"max=50"`
	ID       string `json:"id" validate:"max=64"`
}

type JoinRoom struct {
	RoomID string `json:"roomId" validate:"required,max=128"`
}

type SendMessage struct {
	RoomID string `json:"roomId" validate:"required,max=128"`
	Text   string `json:"text" validate:"required,max=5000"`
}

type StartTyping struct {
	RoomID string `json:"roomId" validate:"required,max=128"`
}

// StopTyping is accepted but has no server-side effect.
type StopTyping struct {
	RoomID string `json:"roomId"`
}

type RequestFriend struct {
	TargetUserID string `json:"targetUserId" validate:"required,max=64"`
}

type AcceptFriend struct {
	RequesterID string `json:"requesterId" validate:"required,max=64"`
}

type RejectFriend struct {
	RequesterID string `json:"requesterId" validate:"required,max=64"`
}

func (Register) command()      {}
func (JoinRoom) command()      {}
func (SendMessage) command()   {}
func (StartTyping) command()   {}
func (StopTyping) command()    {}
func (RequestFriend) command() {}
func (AcceptFriend) command()  {}
func (RejectFriend) command()  {}

// DecodeCommand turns a frame into a validated Command. No state is touched
// for frames that fail here.
func DecodeCommand(frame Frame) (Command, error) {
	var cmd Command
	switch frame.Type {
	case CommandRegister:
		cmd = &Register{}
	case CommandRoomJoin, CommandChannelJoin, CommandConversationJoin:
		cmd = &JoinRoom{}
	case CommandMessageSend:
		cmd = &SendMessage{}
	case CommandTypingStart:
		cmd = &StartTyping{}
	case CommandTypingStop:
		cmd = &StopTyping{}
	case CommandFriendRequest:
		cmd = &RequestFriend{}
	case CommandFriendAccept:
		cmd = &AcceptFriend{}
	case CommandFriendReject:
		cmd = &RejectFriend{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, frame.Type)
	}

	payload := frame.Payload
	if len(payload) == 0 || string(payload) == "null" {
		payload = json.RawMessage("{}")
	}
	if err := json.Unmarshal(payload, cmd); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, frame.Type, err)
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, frame.Type, err)
	}

	// 値で返すことで呼び出し側の type switch を単純にする
	switch c := cmd.(type) {
	case *Register:
		return *c, nil
	case *JoinRoom:
		return *c, nil
	case *SendMessage:
		return *c, nil
	case *StartTyping:
		return *c, nil
	case *StopTyping:
		return *c, nil
	case *RequestFriend:
		return *c, nil
	case *AcceptFriend:
		return *c, nil
	case *RejectFriend:
		return *c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, frame.Type)
}

// ValidateChannelRequest checks a channel creation body.
func ValidateChannelRequest(req CreateChannelRequest) error {
	return validate.Struct(req)
}
