package model

import "time"

// Borrow request statuses.
const (
	BorrowPending  = "pending"
	BorrowApproved = "approved"
	BorrowRejected = "rejected"
	BorrowReturned = "returned"
)

// BorrowRole identifies which party to a borrow request is acting.
type BorrowRole string

// The two parties to a borrow request.
const (
	BorrowRoleOwner     BorrowRole = "owner"
	BorrowRoleRequester BorrowRole = "requester"
)

// BorrowRequest is a request by a user to borrow an item from someone
// else's list. At most one row exists per (item, requester) pair;
// re-requesting resets the existing row to pending.
type BorrowRequest struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	RequesterID int64     `json:"requester_id"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	ItemName       string `json:"item_name,omitempty"`
	ListID         int64  `json:"list_id,omitempty"`
	ListName       string `json:"list_name,omitempty"`
	OwnerID        int64  `json:"owner_id,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	RequesterName  string `json:"requester_name,omitempty"`
	RequesterEmail string `json:"requester_email,omitempty"`
}

// AllowedTransitions returns the statuses a party may move a request to
// from the current status. The two parties have strictly disjoint rights:
// the lender decides pending requests, the borrower attests the return.
func AllowedTransitions(role BorrowRole, current string) []string {
	switch {
	case role == BorrowRoleOwner && current == BorrowPending:
		return []string{BorrowApproved, BorrowRejected}
	case role == BorrowRoleRequester && current == BorrowApproved:
		return []string{BorrowReturned}
	default:
		return nil
	}
}

// CanTransition checks if a party may move a request from current to target.
func CanTransition(role BorrowRole, current, target string) bool {
	for _, s := range AllowedTransitions(role, current) {
		if s == target {
			return true
		}
	}
	return false
}

// BorrowTerminal checks if a status admits no further transitions.
func BorrowTerminal(status string) bool {
	return status == BorrowRejected || status == BorrowReturned
}
