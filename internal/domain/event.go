package domain

import "time"

// Event describes a committed change to the catalog.
type Event struct {
	Type    EventType `json:"type"`
	Kind    Kind      `json:"kind"`
	ID      int64     `json:"id"`
	Related []int64   `json:"related,omitempty"`
	Time    time.Time `json:"time"`
}
