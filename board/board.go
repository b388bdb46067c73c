/*
board.go - The dashboard state container

PURPOSE:
  Board owns every piece of mutable dashboard state: the calendar grid,
  the two logs, the policy image, and the man-hours figure. All mutation
  goes through discrete commands on this type; timers (auto-fill, remote
  pull) and HTTP handlers are just callers.

CONCURRENCY:
  One logical editor plus background timers. A single RWMutex serializes
  commands; reads take the shared lock. Change notification fires after
  the lock is released so the autosaver (or anything else hooked on
  OnChange) can re-enter read methods safely.

CHANGE NOTIFICATION:
  Every state-changing command that actually changed something invokes
  the OnChange hook exactly once. The autosaver debounces on top of
  that, so rapid cycling through a day's statuses coalesces into one
  write.
*/
package board

import (
	"sync"
	"time"
)

// SeedAnnouncementText is the single announcement created on first run
// when nothing was persisted.
const SeedAnnouncementText = "Fire drill will be held on January 30, 2026"

// Board is the explicit state container for the safety dashboard.
type Board struct {
	mu            sync.RWMutex
	cal           *Calendar
	announcements AnnouncementLog
	incidents     IncidentLog
	policyImage   *string
	manHoursYear  int

	onChange func()
}

// New creates a board for the year and month containing now, with all
// days unset and the default man-hours figure.
func New(now time.Time) *Board {
	return &Board{
		cal:          NewCalendar(now.Year(), int(now.Month())-1),
		manHoursYear: DefaultManHoursYear,
	}
}

// SetOnChange registers the hook invoked after every effective mutation.
// Must be called before the board is shared with other goroutines.
func (b *Board) SetOnChange(fn func()) {
	b.onChange = fn
}

func (b *Board) notify(changed bool) {
	if changed && b.onChange != nil {
		b.onChange()
	}
}

// =============================================================================
// CALENDAR COMMANDS
// =============================================================================

// SetYear activates a year, rebuilding the grid unless it already
// matches.
func (b *Board) SetYear(year int) {
	b.mu.Lock()
	before := b.cal.Year()
	b.cal.SetYear(year)
	b.mu.Unlock()
	b.notify(before != year)
}

// SetDisplayedMonth moves the cursor (clamped 0..11).
func (b *Board) SetDisplayedMonth(month int) {
	b.mu.Lock()
	before := b.cal.DisplayedMonth()
	b.cal.SetDisplayedMonth(month)
	changed := b.cal.DisplayedMonth() != before
	b.mu.Unlock()
	b.notify(changed)
}

// RecordDayStatus cycles one day's status (the day-click command).
func (b *Board) RecordDayStatus(month, dayIndex int) {
	b.mu.Lock()
	changed := b.cal.RecordDayStatus(month, dayIndex)
	b.mu.Unlock()
	b.notify(changed)
}

// AutoFillPastDays applies the 16:00 default-to-normal policy against
// the wall-clock reference time. Idempotent within a day; safe to call
// from overlapping timer ticks.
func (b *Board) AutoFillPastDays(ref time.Time) bool {
	b.mu.Lock()
	changed := b.cal.AutoFillPastDays(ref)
	b.mu.Unlock()
	b.notify(changed)
	return changed
}

// =============================================================================
// LOG COMMANDS
// =============================================================================

// AddAnnouncement appends a notice; empty text is silently rejected.
func (b *Board) AddAnnouncement(text string, now time.Time) (Announcement, bool) {
	b.mu.Lock()
	a, ok := b.announcements.Add(text, now)
	b.mu.Unlock()
	b.notify(ok)
	return a, ok
}

// EditAnnouncement replaces a notice's text in place.
func (b *Board) EditAnnouncement(id, text string) bool {
	b.mu.Lock()
	ok := b.announcements.Edit(id, text)
	b.mu.Unlock()
	b.notify(ok)
	return ok
}

// DeleteAnnouncement removes by id; unknown ids are a no-op. The
// "never delete the last announcement" rule is a UI guard enforced at
// the API edge, not here.
func (b *Board) DeleteAnnouncement(id string) bool {
	b.mu.Lock()
	ok := b.announcements.Delete(id)
	b.mu.Unlock()
	b.notify(ok)
	return ok
}

// AddIncident prepends an incident; an empty title is silently rejected.
func (b *Board) AddIncident(date string, typ IncidentType, title, note string) (Incident, bool) {
	b.mu.Lock()
	in, ok := b.incidents.Add(date, typ, title, note)
	b.mu.Unlock()
	b.notify(ok)
	return in, ok
}

// DeleteIncident removes by id; unknown ids are a no-op.
func (b *Board) DeleteIncident(id string) bool {
	b.mu.Lock()
	ok := b.incidents.Delete(id)
	b.mu.Unlock()
	b.notify(ok)
	return ok
}

// ClearIncidents drops the whole incident log (local only).
func (b *Board) ClearIncidents() {
	b.mu.Lock()
	changed := b.incidents.Clear()
	b.mu.Unlock()
	b.notify(changed)
}

// =============================================================================
// SCALAR COMMANDS
// =============================================================================

// SetManHoursYear stores the KPI denominator, clamped non-negative.
func (b *Board) SetManHoursYear(v int) {
	if v < 0 {
		v = 0
	}
	b.mu.Lock()
	changed := b.manHoursYear != v
	b.manHoursYear = v
	b.mu.Unlock()
	b.notify(changed)
}

// SetPolicyImage stores a new poster payload (a data URI; validated at
// the input boundary, opaque here).
func (b *Board) SetPolicyImage(dataURI string) {
	b.mu.Lock()
	b.policyImage = &dataURI
	b.mu.Unlock()
	b.notify(true)
}

// ClearPolicyImage removes the poster.
func (b *Board) ClearPolicyImage() {
	b.mu.Lock()
	changed := b.policyImage != nil
	b.policyImage = nil
	b.mu.Unlock()
	b.notify(changed)
}

// ReplaceAnnouncements swaps the whole announcement log (remote pull).
func (b *Board) ReplaceAnnouncements(items []Announcement) {
	b.mu.Lock()
	b.announcements.Replace(items)
	b.mu.Unlock()
	b.notify(true)
}

// ReplaceIncidents swaps the whole incident log (remote pull).
func (b *Board) ReplaceIncidents(items []Incident) {
	b.mu.Lock()
	b.incidents.Replace(items)
	b.mu.Unlock()
	b.notify(true)
}

// SeedDefaultAnnouncement adds the first-run notice when the log is
// still empty. Called only when startup found nothing persisted.
func (b *Board) SeedDefaultAnnouncement(now time.Time) {
	b.mu.Lock()
	var ok bool
	if b.announcements.Len() == 0 {
		_, ok = b.announcements.Add(SeedAnnouncementText, now)
	}
	b.mu.Unlock()
	b.notify(ok)
}

// =============================================================================
// READS
// =============================================================================

// Year returns the active year.
func (b *Board) Year() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cal.Year()
}

// DisplayedMonth returns the cursor position.
func (b *Board) DisplayedMonth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cal.DisplayedMonth()
}

// Months returns a deep copy of the twelve-month grid.
func (b *Board) Months() []MonthlyData {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cal.Months()
}

// Month returns a copy of one month; ok=false yields an empty view.
func (b *Board) Month(index int) (MonthlyData, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cal.Month(index)
}

// Statistics derives the current KPI set.
func (b *Board) Statistics() Statistics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ComputeStatistics(b.cal.months, b.incidents.items, b.manHoursYear)
}

// Streak returns the current no-incident run length.
func (b *Board) Streak() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cal.Streak()
}

// Announcements returns the log in storage order (oldest first).
func (b *Board) Announcements() []Announcement {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.announcements.Items()
}

// RecentAnnouncements returns the log newest-first for display.
func (b *Board) RecentAnnouncements() []Announcement {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.announcements.Recent()
}

// Incidents returns the log newest-first.
func (b *Board) Incidents() []Incident {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.incidents.Items()
}

// ManHoursYear returns the KPI denominator as stored (unclamped).
func (b *Board) ManHoursYear() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.manHoursYear
}

// PolicyImage returns the poster data URI, ok=false when none is set.
func (b *Board) PolicyImage() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.policyImage == nil {
		return "", false
	}
	return *b.policyImage, true
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// ExportSnapshot captures all persistent fields with a fresh updatedAt.
func (b *Board) ExportSnapshot(now time.Time) PersistedSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var img *string
	if b.policyImage != nil {
		v := *b.policyImage
		img = &v
	}
	return PersistedSnapshot{
		Version:       SnapshotVersion,
		Year:          b.cal.Year(),
		DisplayMonth:  b.cal.DisplayedMonth(),
		MonthlyData:   b.cal.Months(),
		PolicyImage:   img,
		Announcements: b.announcements.Items(),
		Incidents:     b.incidents.Items(),
		ManHoursYear:  b.manHoursYear,
		UpdatedAt:     now,
	}
}

// ImportSnapshot parses and applies snapshot bytes. Malformed payloads
// and foreign versions are a silent no-op (fail closed); returns whether
// the snapshot was applied.
func (b *Board) ImportSnapshot(data []byte) bool {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return false
	}
	b.ApplySnapshot(snap)
	return true
}

// ApplySnapshot replaces the full in-memory state with the snapshot's
// contents. Also used by startup load.
func (b *Board) ApplySnapshot(snap *PersistedSnapshot) {
	b.mu.Lock()
	b.cal.Replace(snap.Year, snap.DisplayMonth, snap.MonthlyData)
	b.announcements.Replace(snap.Announcements)
	b.incidents.Replace(snap.Incidents)
	if snap.PolicyImage != nil {
		v := *snap.PolicyImage
		b.policyImage = &v
	} else {
		b.policyImage = nil
	}
	mh := snap.ManHoursYear
	if mh < 0 {
		mh = 0
	}
	b.manHoursYear = mh
	b.mu.Unlock()
	b.notify(true)
}
