// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to operate on a reservation owned by someone else,
// while ErrNotPending signals that a reservation has already been
// processed by an administrator and can no longer be withdrawn.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrNotPending is returned when a reservation delete is attempted
// after the reservation left the pending state. Handlers should
// translate this into an HTTP 409 response.
var ErrNotPending = errors.New("reservation is not pending")

// ErrEmailExists is returned by UserRepo.Create when the email
// address is already registered.
var ErrEmailExists = errors.New("email already exists")
