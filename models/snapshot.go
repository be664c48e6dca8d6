package models

import "time"

// Snapshot is a full copy of both sheets taken in one fetch. Snapshots are
// immutable: an optimistic append produces a new Snapshot, and a superseded
// one is simply dropped, never merged.
type Snapshot struct {
	Logs      []LogEntry `json:"logs"`
	Settings  []Setting  `json:"settings"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// WithLog returns a copy of the snapshot with entry appended. Used for the
// optimistic in-session append after a meal is logged.
func (s *Snapshot) WithLog(entry LogEntry) *Snapshot {
	logs := make([]LogEntry, 0, len(s.Logs)+1)
	logs = append(logs, s.Logs...)
	logs = append(logs, entry)
	return &Snapshot{Logs: logs, Settings: s.Settings, FetchedAt: s.FetchedAt}
}
