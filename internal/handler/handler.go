package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"chathub/internal/config"
	"chathub/internal/hub"
)

// maxBodyBytes はリクエストボディの上限 (1MB)
const maxBodyBytes = 1 << 20

// Handler holds application dependencies
type Handler struct {
	Hub    *hub.Hub
	Config config.Config
	Log    *zap.SugaredLogger
}

// New creates a new Handler with the given dependencies
func New(h *hub.Hub, cfg config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		Hub:    h,
		Config: cfg,
		Log:    logger.Named("http").Sugar(),
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// REST API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/servers", h.GetServers).Methods("GET")
	api.HandleFunc("/servers/{serverId}/channels", h.GetChannels).Methods("GET")
	api.HandleFunc("/servers/{serverId}/channels", h.CreateChannel).Methods("POST")
	api.HandleFunc("/servers/{serverId}/channels/{channelId}", h.DeleteChannel).Methods("DELETE")
	api.HandleFunc("/channels/{roomId}/messages", h.GetMessages).Methods("GET")
	api.HandleFunc("/conversations/{roomId}/messages", h.GetMessages).Methods("GET")
	api.HandleFunc("/rooms/{roomId}/typing", h.GetTyping).Methods("GET")
	api.HandleFunc("/users/search", h.SearchUsers).Methods("GET")
	api.HandleFunc("/users/online", h.GetOnlineUsers).Methods("GET")
	api.HandleFunc("/users/{userId}/friends", h.GetFriends).Methods("GET")
	api.HandleFunc("/users/{userId}/friend-requests", h.GetFriendRequests).Methods("GET")
	api.HandleFunc("/users/{userId}/conversations", h.GetConversations).Methods("GET")

	r.HandleFunc("/health", h.Health).Methods("GET")

	// WebSocket
	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	return r
}

func logPrefix(r *http.Request) string {
	return fmt.Sprintf("[%s %s]", r.Method, r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeHubError maps hub errors onto HTTP responses.
func (h *Handler) writeHubError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, hub.ErrServerNotFound):
		h.Log.Infof("%s ❌ Not Found: %v", logPrefix(r), err)
		writeError(w, http.StatusNotFound, "Server not found")
	case errors.Is(err, hub.ErrChannelNotFound):
		h.Log.Infof("%s ❌ Not Found: %v", logPrefix(r), err)
		writeError(w, http.StatusNotFound, "Channel not found")
	case errors.Is(err, hub.ErrRoomNotFound):
		h.Log.Infof("%s ❌ Not Found: %v", logPrefix(r), err)
		writeError(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, hub.ErrStopped):
		h.Log.Warnf("%s ❌ Unavailable: %v", logPrefix(r), err)
		writeError(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		h.Log.Errorf("%s ❌ Internal error: %v", logPrefix(r), err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
