package model

// Channel types. Voice channels carry metadata only.
const (
	ChannelText  = "text"
	ChannelVoice = "voice"
)

// Channel is a named room inside a server.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Server groups channels.
type Server struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Channels []Channel `json:"channels"`
}

// CreateChannelRequest is the body of a channel creation request.
type CreateChannelRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"omitempty,oneof=text voice"`
}
