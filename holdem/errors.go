package holdem

import "errors"

var (
	ErrHandEnded = errors.New("hand already ended")
	ErrOutOfTurn = errors.New("action out of turn")

	// ErrTooFewPlayers is a GameError-class precondition failure:
	// the room tried to start a hand with fewer than two seated,
	// ready, active players.
	ErrTooFewPlayers = errors.New("fewer than two active players")

	// ErrNoSeats means BetRounder was asked to traverse an empty seat
	// order.
	ErrNoSeats = errors.New("no seated players")

	// ErrUnknownPlayerInOrder means the SeatTable's traversal order
	// named an id with no bound endpoint — a SeatTable/HandEngine
	// desync that should never happen under the room's lock.
	ErrUnknownPlayerInOrder = errors.New("unknown player in traversal order")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
