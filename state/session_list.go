package state

import (
	"time"

	"github.com/google/uuid"
)

// SessionList - All sessions of one server from a single collection
type SessionList struct {
	ID          uuid.UUID `json:"id"`
	Server      string    `json:"server"`
	Backend     string    `json:"backend"`
	CollectedAt time.Time `json:"collected_at"`
	Sessions    []Session `json:"sessions"`
}

func NewSessionList(server string, backend string, collectedAt time.Time, sessions []Session) SessionList {
	return SessionList{
		ID:          uuid.New(),
		Server:      server,
		Backend:     backend,
		CollectedAt: collectedAt,
		Sessions:    sessions,
	}
}

// SessionDiff - Result of comparing two session lists by identity
type SessionDiff struct {
	Added     []Session
	Removed   []Session
	Unchanged []Session // taken from the newer list
}

// DiffSessions - Compares two lists by Key() only, so sessions whose
// counters moved but that still wait on the same event count as unchanged
func DiffSessions(prev []Session, next []Session) (diff SessionDiff) {
	prevKeys := make(map[SessionKey]bool, len(prev))
	for _, s := range prev {
		prevKeys[s.Key()] = true
	}
	nextKeys := make(map[SessionKey]bool, len(next))
	for _, s := range next {
		nextKeys[s.Key()] = true
	}

	for _, s := range next {
		if prevKeys[s.Key()] {
			diff.Unchanged = append(diff.Unchanged, s)
		} else {
			diff.Added = append(diff.Added, s)
		}
	}
	for _, s := range prev {
		if !nextKeys[s.Key()] {
			diff.Removed = append(diff.Removed, s)
		}
	}

	return
}
