package state

import (
	"strconv"

	"gopkg.in/guregu/null.v3"
)

// SessionKey - Identity of a session snapshot: the session and what it is
// waiting on. Comparable, so it can be used directly as a map key.
//
// A NULL wait event and an empty wait event are different keys.
type SessionKey struct {
	SessionID int64
	WaitEvent null.String
}

func newSessionKey(sessionID int64, waitEvent null.String) SessionKey {
	if !waitEvent.Valid {
		waitEvent = null.String{}
	}
	return SessionKey{SessionID: sessionID, WaitEvent: waitEvent}
}

// HasActiveQuery - Snapshots that expose the query currently running in the
// session, independent of how the backend names the underlying fields
type HasActiveQuery interface {
	ActiveQuery() null.String
	ActiveQueryID() null.String
}

// Session - Common view of a session snapshot for any backend
type Session interface {
	HasActiveQuery

	Key() SessionKey

	// String returns the display label, "<id> - <wait event>"
	String() string
}

func sessionLabel(key SessionKey) string {
	if !key.WaitEvent.Valid {
		return strconv.FormatInt(key.SessionID, 10)
	}
	return strconv.FormatInt(key.SessionID, 10) + " - " + key.WaitEvent.String
}

// FieldCategory - Group a snapshot field is shown under
type FieldCategory string

const (
	CategorySession FieldCategory = "Session"
	CategorySQL     FieldCategory = "SQL"
	CategoryProcess FieldCategory = "Process"
	CategoryIO      FieldCategory = "IO"
	CategoryWait    FieldCategory = "Wait"
)

// FieldInfo - Display metadata for one snapshot field. Not used by the
// collector itself, renderers use it to group, sort and hide fields.
type FieldInfo struct {
	Name     string // Go struct field name
	Column   string // source column in the monitoring view
	Category FieldCategory
	Order    int
	Viewable bool // shown by default, otherwise detail-only
}
