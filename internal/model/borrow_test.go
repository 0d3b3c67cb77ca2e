package model

import "testing"

func TestCanTransition(t *testing.T) {
	statuses := []string{BorrowPending, BorrowApproved, BorrowRejected, BorrowReturned}
	roles := []BorrowRole{BorrowRoleOwner, BorrowRoleRequester}

	allowed := map[[3]string]bool{
		{string(BorrowRoleOwner), BorrowPending, BorrowApproved}:      true,
		{string(BorrowRoleOwner), BorrowPending, BorrowRejected}:      true,
		{string(BorrowRoleRequester), BorrowApproved, BorrowReturned}: true,
	}

	// Every (role, current, target) triple outside the allowed set must be
	// denied, including the no-op transitions and terminal states.
	for _, role := range roles {
		for _, current := range statuses {
			for _, target := range statuses {
				want := allowed[[3]string{string(role), current, target}]
				got := CanTransition(role, current, target)
				if got != want {
					t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", role, current, target, got, want)
				}
			}
		}
	}
}

func TestTransitionSetsAreDisjoint(t *testing.T) {
	for _, current := range []string{BorrowPending, BorrowApproved, BorrowRejected, BorrowReturned} {
		ownerTargets := AllowedTransitions(BorrowRoleOwner, current)
		requesterTargets := AllowedTransitions(BorrowRoleRequester, current)
		for _, o := range ownerTargets {
			for _, r := range requesterTargets {
				if o == r {
					t.Errorf("owner and requester both allowed %s -> %s", current, o)
				}
			}
		}
	}
}

func TestBorrowTerminal(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{BorrowPending, false},
		{BorrowApproved, false},
		{BorrowRejected, true},
		{BorrowReturned, true},
	}

	for _, tt := range tests {
		if got := BorrowTerminal(tt.status); got != tt.expected {
			t.Errorf("BorrowTerminal(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}

	// Terminal states admit no transitions for either party.
	for _, status := range []string{BorrowRejected, BorrowReturned} {
		for _, role := range []BorrowRole{BorrowRoleOwner, BorrowRoleRequester} {
			if targets := AllowedTransitions(role, status); len(targets) != 0 {
				t.Errorf("AllowedTransitions(%s, %s) = %v, want none", role, status, targets)
			}
		}
	}
}
