/*
snapshot.go - Versioned persistence envelope

PURPOSE:
  PersistedSnapshot is the unit of local autosave and of manual
  export/import. The JSON shape is fixed: the kiosk frontend has files
  in this format in the field, so field names and the null policy image
  are load-bearing.

FAIL-CLOSED IMPORT:
  DecodeSnapshot rejects unparsable payloads and any version other than
  1 with an error and no partial result. Board.ImportSnapshot turns that
  into a silent no-op, which is the behavior the operator-facing import
  must preserve: a bad file leaves current state byte-for-byte unchanged.
*/
package board

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the only version this build reads or writes.
const SnapshotVersion = 1

// PersistedSnapshot captures every persistent field of the dashboard.
type PersistedSnapshot struct {
	Version       int            `json:"version"`
	Year          int            `json:"year"`
	DisplayMonth  int            `json:"displayMonth"`
	MonthlyData   []MonthlyData  `json:"monthlyData"`
	PolicyImage   *string        `json:"policyImage"`
	Announcements []Announcement `json:"announcements"`
	Incidents     []Incident     `json:"incidents"`
	ManHoursYear  int            `json:"manHoursYear"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Encode serializes the snapshot with indentation, matching the export
// files the frontend produced.
func (s PersistedSnapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses and version-checks snapshot bytes. A missing
// manHoursYear falls back to DefaultManHoursYear (older exports omitted
// it).
func DecodeSnapshot(data []byte) (*PersistedSnapshot, error) {
	snap := PersistedSnapshot{ManHoursYear: DefaultManHoursYear}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotMalformed, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d", ErrSnapshotVersion, snap.Version)
	}
	return &snap, nil
}
