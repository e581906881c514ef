package model

import "time"

// Snapshot identifies one stored pull of purchase records from a source.
type Snapshot struct {
	TakenAt     time.Time `json:"taken_at"`
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	RecordCount int       `json:"record_count"`
}
