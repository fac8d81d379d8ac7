// Package apperr collects the error kinds shared across the broker,
// session, and room layers (spec §7). Keeping them in one package lets
// engine code type-switch on a single import instead of each package
// growing its own incompatible sentinel set.
package apperr

import "errors"

// BrokerError wraps a broker IO failure: the underlying transport
// could not complete a push or pop.
type BrokerError struct {
	Op  string
	Err error
}

func (e *BrokerError) Error() string { return "broker: " + e.Op + ": " + e.Err.Error() }
func (e *BrokerError) Unwrap() error { return e.Err }

func NewBrokerError(op string, err error) error {
	return &BrokerError{Op: op, Err: err}
}

// Timeout is returned when a deadline elapses before a recv/ping/ready
// probe completes.
var ErrTimeout = errors.New("timeout")

// FormatError marks an inbound message that failed to decode or did
// not carry the fields its message_type requires.
type FormatError string

func (e FormatError) Error() string { return "format error: " + string(e) }

// GameError marks an engine precondition violation severe enough to
// end the current hand and the room loop (e.g. too few players).
type GameError string

func (e GameError) Error() string { return "game error: " + string(e) }

// RoomFull is returned by SeatTable.Add when every seat is occupied.
var ErrRoomFull = errors.New("room full")

// Duplicate is returned by SeatTable.Add when the id is already
// seated; callers convert this into a rejoin.
var ErrDuplicate = errors.New("duplicate player id")

// UnknownPlayer is returned by SeatTable.Remove (and friends) for an
// id with no seat.
var ErrUnknownPlayer = errors.New("unknown player id")

// IsTimeout reports whether err is, or wraps, ErrTimeout. A
// BrokerError does not match; the engine's bet prompt drops a player
// on any recv error, timeout or broker fault alike.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
