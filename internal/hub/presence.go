package hub

import "chathub/internal/model"

// broadcastPresence sends the online snapshot to every connection.
func (h *Hub) broadcastPresence() {
	h.broadcast(model.PresenceUpdate(h.registry.Online()))
}
