// Package repository sentinel errors shared across repositories so the
// usecase and handler layers can distinguish failure scenarios with
// errors.Is instead of matching message strings.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist within the caller's
// tenant scope. Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned when the commit-time overlap check rejects a
// booking: the slot was taken between the availability query and the
// insert. The caller must re-query availability and let the user pick
// again; it is never auto-resolved. Handlers translate it into HTTP 409.
var ErrSlotTaken = errors.New("slot taken")

// ErrForbidden is returned when the caller lacks the role an operation
// requires, such as a non-owner deleting an appointment. Handlers
// translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")
