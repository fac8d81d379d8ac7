package repository

import (
	"os"
	"strings"
)

const (
	RepoModeMemory = "memory"
	RepoModeDB     = "db"
	RepoModeLocal  = "local"
)

func repoModeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("REPO_MODE")))
	switch raw {
	case "", RepoModeMemory, "mem":
		return RepoModeMemory
	case RepoModeDB, "postgres", "postgresql":
		return RepoModeDB
	case RepoModeLocal, "sqlite":
		return RepoModeLocal
	default:
		return raw
	}
}

// NewRepositoryFromEnv picks a backend from REPO_MODE: memory (the
// default, no persistence across restarts), db (Postgres), or local
// (SQLite file).
func NewRepositoryFromEnv() (Repository, string, error) {
	mode := repoModeFromEnv()
	switch mode {
	case RepoModeMemory:
		return NewMemoryRepository(), mode, nil
	case RepoModeDB:
		repo, err := NewPostgresRepositoryFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return repo, mode, nil
	case RepoModeLocal:
		repo, err := NewSQLiteRepositoryFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return repo, mode, nil
	default:
		return nil, mode, &UnsupportedModeError{Mode: mode}
	}
}

type UnsupportedModeError struct{ Mode string }

func (e *UnsupportedModeError) Error() string {
	return "unsupported REPO_MODE " + e.Mode + " (supported: memory, db, local)"
}
