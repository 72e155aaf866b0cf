package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SearchUsers handles GET /api/users/search?q=&userId=
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	users, err := h.Hub.SearchUsers(r.Context(), query.Get("q"), query.Get("userId"))
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	h.Log.Debugf("%s ✅ Found %d users for %q", logPrefix(r), len(users), query.Get("q"))
	writeJSON(w, http.StatusOK, users)
}

// GetOnlineUsers handles GET /api/users/online
func (h *Handler) GetOnlineUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Hub.OnlineUsers(r.Context())
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetFriends handles GET /api/users/{userId}/friends
func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.Hub.Friends(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, friends)
}

// GetFriendRequests handles GET /api/users/{userId}/friend-requests
func (h *Handler) GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Hub.FriendRequests(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// GetConversations handles GET /api/users/{userId}/conversations
func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.Hub.Conversations(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.writeHubError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, convs)
}
