/*
Package board provides the core state model of the factory safety dashboard.

PURPOSE:
  This package contains the domain types and algorithms behind the kiosk
  display: the per-day incident status calendar, derived safety KPIs
  (IFR/ISR), the no-incident streak, announcement/incident logs, and the
  versioned snapshot used for local persistence and export/import.

KEY CONCEPTS IN THIS FILE (status.go):
  - DayStatus: The per-day attendance/incident outcome
  - Advance:   The single transition rule used by the day-click handler

DESIGN PRINCIPLES:
  1. Pure core: calendar, statistics and streak logic have no I/O
  2. Explicit container: all mutable state lives in Board (board.go),
     mutated by discrete commands, never by free-floating timers
  3. Wire fidelity: JSON shapes match the snapshot format the kiosk
     frontend already produces (unset serializes as null)

SEE ALSO:
  - calendar.go: Year grid and the auto-fill policy
  - board.go:    The state container and its commands
  - snapshot.go: Versioned persistence envelope
*/
package board

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DayStatus is the recorded outcome for a single calendar day.
type DayStatus string

const (
	// StatusUnset means no one has recorded the day yet.
	StatusUnset DayStatus = ""

	// StatusNormal is a day with no reportable incident.
	StatusNormal DayStatus = "normal"

	// StatusNonAbsent is a recordable incident without lost work time.
	StatusNonAbsent DayStatus = "non-absent"

	// StatusAbsent is a lost-time incident (someone went home or worse).
	StatusAbsent DayStatus = "absent"
)

// Advance returns the next status in the day-click cycle:
//
//	unset -> normal -> non-absent -> absent -> unset
//
// Total over all inputs; anything unrecognized restarts the cycle.
func Advance(s DayStatus) DayStatus {
	switch s {
	case StatusUnset:
		return StatusNormal
	case StatusNormal:
		return StatusNonAbsent
	case StatusNonAbsent:
		return StatusAbsent
	default:
		return StatusUnset
	}
}

var jsonNull = []byte("null")

// MarshalJSON serializes StatusUnset as null, matching the frontend's
// persisted format.
func (s DayStatus) MarshalJSON() ([]byte, error) {
	if s == StatusUnset {
		return jsonNull, nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts null or any string. Unknown strings are kept
// verbatim rather than rejected; the snapshot format is schemaless at
// this level and import must not fail on a value the cycle would reset
// anyway.
func (s *DayStatus) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*s = StatusUnset
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("day status must be a string or null: %w", err)
	}
	*s = DayStatus(raw)
	return nil
}
