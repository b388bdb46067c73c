/*
logs.go - Announcement and incident logs

Two ordered, mutable collections with different conventions:

  Announcements: appended oldest-first, text editable in place.
                 Presentation elsewhere re-sorts newest-first (Recent).
  Incidents:     prepended newest-first, immutable after creation
                 (delete-and-recreate is the only edit).

Text/title must be non-empty after trimming to be accepted; empty
submissions are silently dropped. Deleting an unknown id is a no-op.
*/
package board

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Announcement is a dated company notice shown on the kiosk.
type Announcement struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// IncidentType classifies an incident log entry.
type IncidentType string

const (
	IncidentFirstAid IncidentType = "firstAid"
	IncidentFire     IncidentType = "fire"
	IncidentNearMiss IncidentType = "nearMiss"
)

// ValidIncidentType reports whether t is one of the three known types.
func ValidIncidentType(t IncidentType) bool {
	switch t {
	case IncidentFirstAid, IncidentFire, IncidentNearMiss:
		return true
	}
	return false
}

// Incident is a single reported event. The date is free-form relative to
// the calendar grid; logging an incident does not touch day statuses.
type Incident struct {
	ID    string       `json:"id"`
	Date  string       `json:"date"` // YYYY-MM-DD
	Type  IncidentType `json:"type"`
	Title string       `json:"title"`
	Note  string       `json:"note,omitempty"`
}

// =============================================================================
// ANNOUNCEMENT LOG
// =============================================================================

// AnnouncementLog holds announcements in creation order (oldest first).
type AnnouncementLog struct {
	items []Announcement
}

// Add appends a new announcement. Returns ok=false (and changes nothing)
// when the text trims to empty.
func (l *AnnouncementLog) Add(text string, now time.Time) (Announcement, bool) {
	if strings.TrimSpace(text) == "" {
		return Announcement{}, false
	}
	a := Announcement{ID: uuid.NewString(), Text: text, CreatedAt: now}
	l.items = append(l.items, a)
	return a, true
}

// Edit replaces the text of an existing announcement. Unknown ids and
// empty replacement text are both no-ops.
func (l *AnnouncementLog) Edit(id, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Text = text
			return true
		}
	}
	return false
}

// Delete removes by id; unknown ids are a no-op.
func (l *AnnouncementLog) Delete(id string) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy in storage order (oldest first).
func (l *AnnouncementLog) Items() []Announcement {
	out := make([]Announcement, len(l.items))
	copy(out, l.items)
	return out
}

// Recent returns a copy sorted newest-first, for display surfaces that
// lead with the latest notice.
func (l *AnnouncementLog) Recent() []Announcement {
	out := l.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of announcements.
func (l *AnnouncementLog) Len() int { return len(l.items) }

// Replace swaps in externally supplied items (snapshot import, remote pull).
func (l *AnnouncementLog) Replace(items []Announcement) {
	l.items = items
}

// =============================================================================
// INCIDENT LOG
// =============================================================================

// IncidentLog holds incidents newest-first.
type IncidentLog struct {
	items []Incident
}

// Add prepends a new incident. The title must survive trimming; the note
// is optional and stored trimmed. Returns ok=false when rejected.
func (l *IncidentLog) Add(date string, typ IncidentType, title, note string) (Incident, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Incident{}, false
	}
	in := Incident{
		ID:    uuid.NewString(),
		Date:  date,
		Type:  typ,
		Title: title,
		Note:  strings.TrimSpace(note),
	}
	l.items = append([]Incident{in}, l.items...)
	return in, true
}

// Delete removes by id; unknown ids are a no-op.
func (l *IncidentLog) Delete(id string) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every incident.
func (l *IncidentLog) Clear() bool {
	if len(l.items) == 0 {
		return false
	}
	l.items = nil
	return true
}

// Items returns a copy, newest first.
func (l *IncidentLog) Items() []Incident {
	out := make([]Incident, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of incidents.
func (l *IncidentLog) Len() int { return len(l.items) }

// Replace swaps in externally supplied items (snapshot import, remote pull).
func (l *IncidentLog) Replace(items []Incident) {
	l.items = items
}
