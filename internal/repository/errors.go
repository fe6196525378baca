// Package repository implements data access over MySQL.  This file defines
// sentinel errors shared across repositories so that handlers can map
// failure scenarios onto HTTP responses without inspecting SQL details.
package repository

import "errors"

// ErrDonationNotFound is returned when a donation id does not resolve.
// Handlers translate it into HTTP 404.
var ErrDonationNotFound = errors.New("donation not found")

// ErrUserNotFound is returned when a user id does not resolve.  Handlers
// translate it into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrConflict is returned when a conditional status update matched the row
// by id but not by expected status: somebody else won the race or the
// donation already moved on.  Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registration hits the unique email index.
// Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
