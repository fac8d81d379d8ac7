package broker

import (
	"os"
	"strconv"
	"strings"
)

const (
	ModeMemory = "memory"
	ModeRedis  = "redis"
)

func modeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("BROKER_MODE")))
	switch raw {
	case "", ModeMemory, "mem":
		return ModeMemory
	case ModeRedis:
		return ModeRedis
	default:
		return raw
	}
}

// NewFromEnv picks a Broker backend from BROKER_MODE: memory (the
// default, single-process) or redis (REDIS_ADDR, REDIS_PASSWORD,
// REDIS_DB).
func NewFromEnv() (Broker, string, error) {
	mode := modeFromEnv()
	switch mode {
	case ModeMemory:
		return NewMemoryBroker(), mode, nil
	case ModeRedis:
		addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
		if addr == "" {
			addr = "localhost:6379"
		}
		password := os.Getenv("REDIS_PASSWORD")
		db := 0
		if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				db = parsed
			}
		}
		return NewRedisBroker(addr, password, db), mode, nil
	default:
		return nil, mode, &UnsupportedModeError{Mode: mode}
	}
}

type UnsupportedModeError struct{ Mode string }

func (e *UnsupportedModeError) Error() string {
	return "unsupported BROKER_MODE " + e.Mode + " (supported: memory, redis)"
}
