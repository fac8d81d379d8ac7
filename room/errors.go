package room

import "errors"

var (
	// ErrInactive means the room has deactivated (Stop was called, or
	// its hand loop ended on an error) and it accepts no further
	// admissions.
	ErrInactive = errors.New("room inactive")

	// ErrModeSwitchDuringHand is returned when the owner requests a
	// GameFactory swap while a hand is in progress (spec §4.7); a
	// non-owner gets ErrNotOwner instead.
	ErrModeSwitchDuringHand = errors.New("cannot switch mode while a hand is in progress")

	ErrNotOwner = errors.New("only the room owner may switch modes")
)
