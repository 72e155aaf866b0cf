package model

import (
	"fmt"
	"net/url"
)

// StatusOnline is the only status a live user can have.
const StatusOnline = "online"

// User is a registered identity bound to one connection while online.
type User struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	Avatar           string `json:"avatar"`
	Status           string `json:"status"`
	ConnectionHandle string `json:"-"`
}

// AvatarURL returns the generated avatar image for a display name.
func AvatarURL(displayName string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(displayName))
}
