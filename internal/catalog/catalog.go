// Package catalog holds the servers and their channels.
//
// A Catalog is not safe for concurrent use; it is owned by the hub loop.
package catalog

import (
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chathub/internal/model"
)

type server struct {
	info     model.Server
	channels []model.Channel
}

// Catalog lists servers in insertion order, each with ordered channels.
type Catalog struct {
	servers []*server
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{}
}

// Seeded creates the catalog every fresh process starts with.
func Seeded() *Catalog {
	c := New()
	c.AddServer(model.Server{
		ID:   "1",
		Name: "My server",
		Icon: "🎮",
		Channels: []model.Channel{
			{ID: "1", Name: "general", Type: model.ChannelText},
			{ID: "2", Name: "voice", Type: model.ChannelVoice},
			{ID: "3", Name: "memes", Type: model.ChannelText},
		},
	})
	c.AddServer(model.Server{
		ID:   "2",
		Name: "Gamers",
		Icon: "🎯",
		Channels: []model.Channel{
			{ID: "4", Name: "flood", Type: model.ChannelText},
			{ID: "5", Name: "games", Type: model.ChannelText},
		},
	})
	return c
}

// AddServer adds s with its channels.
func (c *Catalog) AddServer(s model.Server) {
	channels := slices.Clone(s.Channels)
	s.Channels = nil
	c.servers = append(c.servers, &server{info: s, channels: channels})
}

func (c *Catalog) find(serverID string) (*server, bool) {
	return lo.Find(c.servers, func(s *server) bool { return s.info.ID == serverID })
}

// Servers returns every server with a copy of its channels.
func (c *Catalog) Servers() []model.Server {
	return lo.Map(c.servers, func(s *server, _ int) model.Server {
		out := s.info
		out.Channels = append([]model.Channel{}, s.channels...)
		return out
	})
}

// Channels returns the channels of serverID.
func (c *Catalog) Channels(serverID string) ([]model.Channel, bool) {
	s, ok := c.find(serverID)
	if !ok {
		return nil, false
	}
	return append([]model.Channel{}, s.channels...), true
}

// CreateChannel adds a channel to serverID. An empty type means text.
func (c *Catalog) CreateChannel(serverID, name, kind string) (model.Channel, bool) {
	s, ok := c.find(serverID)
	if !ok {
		return model.Channel{}, false
	}
	if kind == "" {
		kind = model.ChannelText
	}
	ch := model.Channel{ID: uuid.NewString(), Name: name, Type: kind}
	s.channels = append(s.channels, ch)
	return ch, true
}

// DeleteChannel removes channelID from serverID.
func (c *Catalog) DeleteChannel(serverID, channelID string) bool {
	s, ok := c.find(serverID)
	if !ok {
		return false
	}
	i := slices.IndexFunc(s.channels, func(ch model.Channel) bool { return ch.ID == channelID })
	if i < 0 {
		return false
	}
	s.channels = slices.Delete(s.channels, i, i+1)
	return true
}

// IsChannel reports whether any server currently has channelID.
func (c *Catalog) IsChannel(channelID string) bool {
	return lo.SomeBy(c.servers, func(s *server) bool {
		return slices.ContainsFunc(s.channels, func(ch model.Channel) bool { return ch.ID == channelID })
	})
}
