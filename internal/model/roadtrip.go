package model

import "time"

// Roadtrip represents a shared trip with members, todos and a grocery list.
type Roadtrip struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Date      *string   `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	OwnerName   string   `json:"owner_name,omitempty"`
	MemberCount int      `json:"member_count"`
	TodoCount   int      `json:"todo_count"`
	Members     []Member `json:"members,omitempty"`
	Todos       []Todo   `json:"todos,omitempty"`
}

// Member is a traveller on a roadtrip. The owner is always implicitly a
// traveller and never appears as a member row.
type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Todo is a single entry on a roadtrip's todo list.
type Todo struct {
	ID         int64     `json:"id"`
	RoadtripID int64     `json:"roadtrip_id"`
	Text       string    `json:"text"`
	Done       bool      `json:"done"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
