package service

import (
	"errors"
	"fmt"
)

// Base error kinds. The HTTP layer maps these to status codes; everything
// below wraps one of them. ErrNotFound deliberately covers "exists but the
// caller has no access" for list- and trip-scoped operations, so a caller
// cannot probe which private IDs exist. ErrForbidden is used only where
// the resource's existence is already known to the caller.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// Operation-specific errors. Each wraps its base kind, so callers can match
// the specific failure with errors.Is or fall back to the transport class.
var (
	// ErrNotOwner: the caller does not own the resource outright. Folded
	// into the not-found class on purpose.
	ErrNotOwner = fmt.Errorf("caller is not the owner: %w", ErrNotFound)

	// ErrUnknownUser: no account has the given email address.
	ErrUnknownUser = fmt.Errorf("no user with that email: %w", ErrNotFound)

	// ErrSelfShare: an owner tried to share a list with themselves.
	ErrSelfShare = fmt.Errorf("cannot share a list with yourself: %w", ErrInvalidArgument)

	// ErrShareNotFound: the share does not exist on the given list.
	ErrShareNotFound = fmt.Errorf("share not found: %w", ErrNotFound)

	// ErrAlreadyOwner: the trip owner cannot also be added as a member.
	ErrAlreadyOwner = fmt.Errorf("user already owns the roadtrip: %w", ErrInvalidArgument)

	// ErrAlreadyMember: the user already travels on the trip.
	ErrAlreadyMember = fmt.Errorf("user is already a member: %w", ErrConflict)

	// ErrEmailRegistered: registration with an email that is taken.
	ErrEmailRegistered = fmt.Errorf("email already registered: %w", ErrConflict)

	// ErrSelfBorrow: the owner party of a list cannot borrow from it.
	ErrSelfBorrow = fmt.Errorf("cannot borrow from your own list: %w", ErrInvalidArgument)

	// ErrNoAccess: the requester cannot see the item's list at all.
	ErrNoAccess = fmt.Errorf("no access to this item: %w", ErrForbidden)

	// ErrIllegalTransition: the (actor, status, target) combination is not
	// a legal borrow-workflow move.
	ErrIllegalTransition = errors.New("illegal status transition")
)
