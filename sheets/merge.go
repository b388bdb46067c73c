/*
merge.go - Field-level whitelist applied on pull

The whitelist is the enforcement point for the sync-exempt calendar:
only the fields named here can ever be written by a remote response,
and each one is presence- and type-checked before acceptance. A field
missing from the response leaves the local value unchanged; a field of
the wrong type is ignored. The policy image is the one field where an
explicit null is meaningful (the remote cleared the poster).
*/
package sheets

import (
	"bytes"
	"encoding/json"

	"github.com/plantops/safety-board/board"
)

// remoteFields carries the raw pull response. RawMessage keeps the
// missing / null / present distinction that a typed struct would lose.
type remoteFields struct {
	PolicyImage   json.RawMessage `json:"policyImage"`
	Announcements json.RawMessage `json:"announcements"`
	Incidents     json.RawMessage `json:"incidents"`
	ManHoursYear  json.RawMessage `json:"manHoursYear"`
	UpdatedAt     json.RawMessage `json:"updatedAt"`
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// applyRemoteFields merges accepted fields into the board and returns
// the remote updatedAt marker when one was provided. The calendar is
// deliberately absent from this function; that is the invariant.
func applyRemoteFields(b *board.Board, f remoteFields) (remoteUpdatedAt string) {
	if f.ManHoursYear != nil {
		var v float64
		if err := json.Unmarshal(f.ManHoursYear, &v); err == nil {
			b.SetManHoursYear(int(v))
		}
	}

	if f.PolicyImage != nil {
		if isJSONNull(f.PolicyImage) {
			b.ClearPolicyImage()
		} else {
			var s string
			if err := json.Unmarshal(f.PolicyImage, &s); err == nil {
				b.SetPolicyImage(s)
			}
		}
	}

	if f.Announcements != nil {
		var items []board.Announcement
		if err := json.Unmarshal(f.Announcements, &items); err == nil && !isJSONNull(f.Announcements) {
			b.ReplaceAnnouncements(items)
		}
	}

	if f.Incidents != nil {
		var items []board.Incident
		if err := json.Unmarshal(f.Incidents, &items); err == nil && !isJSONNull(f.Incidents) {
			b.ReplaceIncidents(items)
		}
	}

	if f.UpdatedAt != nil {
		var s string
		if err := json.Unmarshal(f.UpdatedAt, &s); err == nil {
			remoteUpdatedAt = s
		}
	}
	return remoteUpdatedAt
}
