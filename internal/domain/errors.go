package domain

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError covers malformed or incomplete request payloads.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InternalError wraps unexpected storage or infrastructure failures.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// MalformedLabelError means a seat label does not match the
// <digits><letter> pattern.
type MalformedLabelError struct {
	Label string
}

func (e MalformedLabelError) Error() string {
	return fmt.Sprintf("malformed seat label %q", e.Label)
}

// OutOfRangeError means a (row, column) pair cannot be encoded as a
// seat label.
type OutOfRangeError struct {
	Row    int
	Column int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("seat position (%d,%d) out of range", e.Row, e.Column)
}

// TripNotBookableError means the trip exists but is not in a state
// that accepts bookings.
type TripNotBookableError struct {
	TripID int64
	Status string
}

func (e TripNotBookableError) Error() string {
	return fmt.Sprintf("trip %d is not bookable (status %s)", e.TripID, e.Status)
}

// InvalidSeatError means a requested seat label is empty, duplicated,
// or falls outside the bus grid.
type InvalidSeatError struct {
	Label string
	Msg   string
	Err   error
}

func (e InvalidSeatError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid seat %q: %s", e.Label, e.Msg)
	}
	return fmt.Sprintf("invalid seat %q", e.Label)
}

func (e InvalidSeatError) Unwrap() error { return e.Err }

// SeatAlreadyReservedError names every requested seat already held by
// an active reservation on the same trip.
type SeatAlreadyReservedError struct {
	TripID int64
	Seats  []string
}

func (e SeatAlreadyReservedError) Error() string {
	return fmt.Sprintf("seats already reserved on trip %d: %s", e.TripID, strings.Join(e.Seats, ","))
}

// InsufficientCapacityError means the trip cannot seat the requested
// party size.
type InsufficientCapacityError struct {
	TripID    int64
	Requested int
	Available int
}

func (e InsufficientCapacityError) Error() string {
	return fmt.Sprintf("trip %d has %d seats left, %d requested", e.TripID, e.Available, e.Requested)
}

// InvalidTransitionError rejects illegal reservation status changes.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}

// InventoryCorruptionError signals a broken ledger invariant, e.g. a
// stored seat label that decodes outside the bus grid. Treated as
// fatal by callers, never as normal contention.
type InventoryCorruptionError struct {
	TripID int64
	Label  string
	Err    error
}

func (e InventoryCorruptionError) Error() string {
	return fmt.Sprintf("inventory corruption on trip %d: seat %q: %v", e.TripID, e.Label, e.Err)
}

func (e InventoryCorruptionError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsMalformedLabel(err error) bool {
	var target MalformedLabelError
	return errors.As(err, &target)
}

func IsOutOfRange(err error) bool {
	var target OutOfRangeError
	return errors.As(err, &target)
}

func IsTripNotBookable(err error) bool {
	var target TripNotBookableError
	return errors.As(err, &target)
}

func IsInvalidSeat(err error) bool {
	var target InvalidSeatError
	return errors.As(err, &target)
}

func IsSeatAlreadyReserved(err error) bool {
	var target SeatAlreadyReservedError
	return errors.As(err, &target)
}

func IsInsufficientCapacity(err error) bool {
	var target InsufficientCapacityError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsInventoryCorruption(err error) bool {
	var target InventoryCorruptionError
	return errors.As(err, &target)
}
