package holdem

import (
	"fmt"
	"time"

	"holdem-broker/apperr"
)

// Config is one rule-set variant: blind sizes and the timing knobs a
// room exposes as its current game mode. Per spec §9, modes are
// tagged variants over a rule set rather than an evaluator or deck
// subclass hierarchy — Config is the tag.
type Config struct {
	MaxPlayers int
	MinPlayers int

	SmallBlind int64
	BigBlind   int64

	ActionTimeout time.Duration
	PingTimeout   time.Duration
	PaceInterval  time.Duration

	Seed int64
}

// DefaultConfig mirrors the timeouts fixed by spec §5: bet 300s, ping
// 2s, ~1s inter-street pacing.
func DefaultConfig(maxPlayers int, smallBlind, bigBlind int64) Config {
	return Config{
		MaxPlayers:    maxPlayers,
		MinPlayers:    2,
		SmallBlind:    smallBlind,
		BigBlind:      bigBlind,
		ActionTimeout: 300 * time.Second,
		PingTimeout:   2 * time.Second,
		PaceInterval:  time.Second,
	}
}

func (c Config) validate() error {
	if c.MaxPlayers <= 0 {
		return fmt.Errorf("MaxPlayers must be > 0")
	}
	if c.MinPlayers <= 0 {
		return fmt.Errorf("MinPlayers must be > 0")
	}
	if c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("MinPlayers must be <= MaxPlayers")
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("invalid blinds: sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.ActionTimeout < 0 || c.PingTimeout < 0 || c.PaceInterval < 0 {
		return fmt.Errorf("timeouts must be >= 0")
	}
	return nil
}

// GameFactory is the strategy a Room snapshots under its lock once
// per hand: it returns a freshly configured HandEngine for the
// current mode. Swapping the factory between hands is how a room
// switches stakes or variants without restarting.
type GameFactory interface {
	NewHandEngine(deps EngineDeps) (*HandEngine, error)
}

// ConfigFactory is the one GameFactory implementation the core ships:
// a fixed Config reused for every hand until the room's owner swaps
// it out.
type ConfigFactory struct {
	Config Config
}

func NewConfigFactory(cfg Config) ConfigFactory { return ConfigFactory{Config: cfg} }

func (f ConfigFactory) NewHandEngine(deps EngineDeps) (*HandEngine, error) {
	if err := f.Config.validate(); err != nil {
		return nil, apperr.GameError(err.Error())
	}
	return newHandEngine(f.Config, deps), nil
}
