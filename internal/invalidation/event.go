// Package invalidation defines the data-change events that drive cache
// invalidation for beacon entry types.
package invalidation

import (
	"fmt"
	"strings"
	"time"
)

// Event describes a change to the records of one entry type. Seq is a
// monotonically increasing sequence per (entryType, recordId) used to drop
// stale redeliveries; zero disables deduplication for the event.
type Event struct {
	Version   int       `json:"version"`
	Op        string    `json:"op"`
	EntryType string    `json:"entryType"`
	RecordID  string    `json:"recordId,omitempty"`
	Seq       uint64    `json:"seq,omitempty"`
	TS        time.Time `json:"ts"`
	Source    string    `json:"source,omitempty"`
}

func (e Event) Validate() error {
	if e.Version != 1 {
		return fmt.Errorf("version must be 1")
	}
	switch e.Op {
	case "insert", "update", "delete":
	default:
		return fmt.Errorf("op must be insert|update|delete")
	}
	if strings.TrimSpace(e.EntryType) == "" {
		return fmt.Errorf("entryType is required")
	}
	if e.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	return nil
}

// DedupeKey identifies the record stream the Seq counter belongs to.
func (e Event) DedupeKey() string {
	return e.EntryType + "/" + e.RecordID
}
