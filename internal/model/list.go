package model

import "time"

// List represents a named collection of items. A list is either personal
// (UserID set) or roadtrip-owned (RoadtripID set), never both.
type List struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"`
	RoadtripID *int64    `json:"roadtrip_id,omitempty"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	Shared     bool       `json:"is_shared,omitempty"`
	Permission Permission `json:"permission,omitempty"`
	OwnerName  string     `json:"owner_name,omitempty"`
}

// Item represents a single entry on a list.
type Item struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
