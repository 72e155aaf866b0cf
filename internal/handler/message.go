package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"chathub/internal/model"
)

// GetServers handles GET /api/servers
func (h *Handler) GetServers(w http.ResponseWriter, r *http.Request) {
	servers, err := h.Hub.Servers(r.Context())
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Debugf("%s ✅ Returned %d servers", logPrefix(r), len(servers))
	writeJSON(w, http.StatusOK, servers)
}

// GetChannels handles GET /api/servers/{serverId}/channels
func (h *Handler) GetChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.Hub.Channels(r.Context(), mux.Vars(r)["serverId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Debugf("%s ✅ Returned %d channels", logPrefix(r), len(channels))
	writeJSON(w, http.StatusOK, channels)
}

// CreateChannel handles POST /api/servers/{serverId}/channels
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	serverID := mux.Vars(r)["serverId"]
	h.Log.Infof("%s Request received from %s", logPrefix(r), r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Infof("%s ❌ Bad Request: %v", logPrefix(r), err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := model.ValidateChannelRequest(req); err != nil {
		h.Log.Infof("%s ❌ Bad Request: %v", logPrefix(r), err)
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ch, err := h.Hub.CreateChannel(r.Context(), serverID, req)
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Infof("%s ✅ Created channel: ID=%s, Name=%q", logPrefix(r), ch.ID, ch.Name)
	writeJSON(w, http.StatusCreated, ch)
}

// validationMessage turns the first validation failure into "<field> is required"
// or "<field> is invalid".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	field := strings.ToLower(verrs[0].Field())
	if verrs[0].Tag() == "required" {
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// DeleteChannel handles DELETE /api/servers/{serverId}/channels/{channelId}
func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.Log.Infof("%s Request received from %s", logPrefix(r), r.RemoteAddr)

	if err := h.Hub.DeleteChannel(r.Context(), vars["serverId"], vars["channelId"]); err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Infof("%s ✅ Deleted successfully", logPrefix(r))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetMessages handles GET /api/channels/{roomId}/messages and
// GET /api/conversations/{roomId}/messages
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Hub.Messages(r.Context(), mux.Vars(r)["roomId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Debugf("%s ✅ Returned %d messages", logPrefix(r), len(msgs))
	writeJSON(w, http.StatusOK, msgs)
}

// GetTyping handles GET /api/rooms/{roomId}/typing
func (h *Handler) GetTyping(w http.ResponseWriter, r *http.Request) {
	names, err := h.Hub.Typing(r.Context(), mux.Vars(r)["roomId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.Hub.Health(r.Context())
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, health)
}
