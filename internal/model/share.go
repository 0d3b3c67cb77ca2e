package model

import "time"

// Share is a direct grant of view or edit access on a list to another user.
// Unique per (list, grantee); only the list's owner manages shares.
type Share struct {
	ID         int64      `json:"id"`
	ListID     int64      `json:"list_id"`
	UserID     int64      `json:"user_id"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`

	// Joined fields (not always populated).
	UserName  string `json:"name,omitempty"`
	UserEmail string `json:"email,omitempty"`
}
