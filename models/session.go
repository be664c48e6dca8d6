package models

import "sync"

// SessionState is the per-session container: active user, selected date,
// current goal and the session's view of the data. Each browser session owns
// exactly one of these; it is created on first contact and dies with the
// process. Never shared across sessions.
type SessionState struct {
	sync.Mutex

	ID   string `json:"session_id"`
	User string `json:"user"`
	Goal int    `json:"goal"`
	Date string `json:"date"` // DateLayout, last date the client asked about

	// Snapshot is the session's working copy of the sheet data. It may run
	// ahead of the shared cache by optimistic appends; an explicit refresh
	// drops it.
	Snapshot *Snapshot `json:"-"`
}
