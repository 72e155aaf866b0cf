package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chathub/internal/hub"
	"chathub/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// createUpgrader creates a WebSocket upgrader with the given allowed origins
func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowedMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedMap[origin] = true
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowedMap[origin]
		},
	}
}

// HandleWebSocket handles GET /ws
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := createUpgrader(h.Config.AllowedOrigins)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Infof("[WebSocket] Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// アップグレード後はリクエストのコンテキストに依存しない
	ctx := context.WithoutCancel(r.Context())

	client := hub.NewClient(uuid.NewString(), h.Config.SendBuffer)
	if err := h.Hub.Connect(ctx, client); err != nil {
		h.Log.Warnf("[WebSocket] Connect failed: %v", err)
		return
	}
	h.Log.Infof("[WebSocket] New connection: handle=%s", client.Handle())

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writePump(conn, client)
	}()

	h.readPump(ctx, conn, client)

	if err := h.Hub.Disconnect(ctx, client.Handle()); err != nil && !errors.Is(err, hub.ErrStopped) {
		h.Log.Warnf("[WebSocket] Disconnect failed: %v", err)
	}
	// Disconnect closes the outbound queue, which stops the writer
	conn.Close()
	<-writerDone
	h.Log.Infof("[WebSocket] Client disconnected: handle=%s", client.Handle())
}

// readPump decodes inbound frames into commands until the connection fails.
// Malformed or unknown frames are dropped.
func (h *Handler) readPump(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Infof("[WebSocket] Read error: %v", err)
			}
			return
		}

		var frame model.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.Log.Desugar().Debug("dropping malformed frame", zap.String("handle", client.Handle()), zap.Error(err))
			continue
		}
		cmd, err := model.DecodeCommand(frame)
		if err != nil {
			h.Log.Desugar().Debug("dropping invalid command",
				zap.String("handle", client.Handle()),
				zap.String("type", frame.Type),
				zap.Error(err))
			continue
		}

		if err := h.Hub.Dispatch(ctx, client.Handle(), cmd); err != nil {
			return
		}
	}
}

// writePump writes queued events and keepalive pings. It exits when the hub
// closes the client's queue or a write fails.
func (h *Handler) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-client.Outbound():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				// 遅いクライアントはここで切断され、readPump も終了する
				conn.Close()
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.Log.Infof("[WebSocket] Write error: %v", err)
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
