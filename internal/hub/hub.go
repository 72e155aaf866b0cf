// Package hub is the connection-state coordinator. One goroutine (Run) owns
// every mutable map: connections, the registry, room membership, the friend
// graph, typing state, the catalog and the message store. All public methods
// submit work to that goroutine and wait for it, so each operation is atomic
// with respect to every other one and no locks guard the state.
package hub

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"chathub/internal/catalog"
	"chathub/internal/model"
	"chathub/internal/registry"
	"chathub/internal/router"
	"chathub/internal/social"
	"chathub/internal/store"
	"chathub/internal/typing"
)

var (
	ErrStopped         = errors.New("hub stopped")
	ErrServerNotFound  = errors.New("server not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrRoomNotFound    = errors.New("room not found")
)

// SearchLimit caps user search results.
const SearchLimit = 20

// Client is one live connection as seen by the hub. Events for it are queued
// on a buffered channel drained by the connection's writer.
type Client struct {
	handle string
	send   chan model.Event
	closed bool // owned by the hub loop
}

// NewClient creates a client with an outbound queue of the given size.
func NewClient(handle string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 1
	}
	return &Client{handle: handle, send: make(chan model.Event, buffer)}
}

func (c *Client) Handle() string { return c.handle }

// Outbound is closed when the hub drops the connection.
func (c *Client) Outbound() <-chan model.Event { return c.send }

// Options configures a Hub. Zero values get defaults: in-memory store,
// seeded catalog, 2s typing timeout, time.Now, no-op logger.
type Options struct {
	Store     store.MessageStore
	Catalog   *catalog.Catalog
	TypingTTL time.Duration
	Now       func() time.Time
	Logger    *zap.Logger
}

// Hub coordinates presence, rooms, messages and the friend graph.
type Hub struct {
	log      *zap.Logger
	requests chan func()
	done     chan struct{}

	// owned by the loop
	conns    map[string]*Client
	registry *registry.Registry
	router   *router.Router
	graph    *social.Graph
	typing   *typing.Tracker
	catalog  *catalog.Catalog
	store    store.MessageStore
	now      func() time.Time
}

// New creates a Hub. It does nothing until Run is called.
func New(opts Options) *Hub {
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Seeded()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	h := &Hub{
		log:      opts.Logger.Named("hub"),
		requests: make(chan func()),
		done:     make(chan struct{}),
		conns:    make(map[string]*Client),
		registry: registry.New(),
		graph:    social.New(opts.Now),
		typing:   typing.New(opts.TypingTTL, opts.Now),
		catalog:  opts.Catalog,
		store:    opts.Store,
		now:      opts.Now,
	}
	h.router = router.New(outbox{h})
	return h
}

// Run processes requests until ctx ends, then closes every client queue.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.log.Info("hub started")

	for {
		select {
		case <-ctx.Done():
			for _, c := range h.conns {
				h.closeClient(c)
			}
			h.log.Info("hub stopped", zap.Int("connections", len(h.conns)))
			return
		case fn := <-h.requests:
			fn()
		}
	}
}

// do runs fn on the loop and waits for it. fn receives the caller's context
// for any store I/O it performs.
func (h *Hub) do(ctx context.Context, fn func(ctx context.Context)) error {
	finished := make(chan struct{})
	req := func() {
		defer close(finished)
		fn(ctx)
	}

	select {
	case h.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrStopped
	}
	<-finished
	return nil
}

// Connect adds c to the set of live connections. It receives presence and
// channel broadcasts from now on, registered or not.
func (h *Hub) Connect(ctx context.Context, c *Client) error {
	return h.do(ctx, func(context.Context) {
		h.conns[c.handle] = c
		h.log.Info("connection opened", zap.String("handle", c.handle), zap.Int("connections", len(h.conns)))
	})
}

// Disconnect forgets handle: its memberships lapse, its user leaves the
// online table and the directory, and the others get a new presence
// snapshot. Messages it authored stay in the store.
func (h *Hub) Disconnect(ctx context.Context, handle string) error {
	return h.do(ctx, func(context.Context) {
		c, ok := h.conns[handle]
		if !ok {
			return
		}
		delete(h.conns, handle)
		h.closeClient(c)
		h.router.Drop(handle)

		user, registered := h.registry.Unregister(handle)
		if registered {
			h.broadcastPresence()
		}
		h.log.Info("connection closed",
			zap.String("handle", handle),
			zap.String("user", user.ID),
			zap.Int("connections", len(h.conns)))
	})
}

// Dispatch applies a decoded command sent over handle's connection. Commands
// never produce an error frame; anything that cannot apply is a no-op.
func (h *Hub) Dispatch(ctx context.Context, handle string, cmd model.Command) error {
	return h.do(ctx, func(ctx context.Context) {
		if _, ok := h.conns[handle]; !ok {
			h.log.Debug("command from unknown connection", zap.String("handle", handle))
			return
		}
		h.dispatch(ctx, handle, cmd)
	})
}

type outbox struct{ h *Hub }

func (o outbox) Deliver(handle string, ev model.Event) { o.h.deliver(handle, ev) }

// deliver queues ev without blocking. A connection whose queue is full is
// cut off; its reader will report the disconnect.
func (h *Hub) deliver(handle string, ev model.Event) {
	c, ok := h.conns[handle]
	if !ok || c.closed {
		return
	}
	select {
	case c.send <- ev:
	default:
		h.log.Warn("send queue full, closing connection", zap.String("handle", handle), zap.String("event", ev.Type))
		h.closeClient(c)
	}
}

// broadcast delivers ev to every live connection.
func (h *Hub) broadcast(ev model.Event) {
	for handle := range h.conns {
		h.deliver(handle, ev)
	}
}

func (h *Hub) closeClient(c *Client) {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
