/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal state model from the HTTP contract. Calendar months reuse the
  board types directly because their JSON shape is already the persisted
  wire format the frontend understands.

NAMING CONVENTION:
  - *DTO:     Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/plantops/safety-board/board"
	"github.com/plantops/safety-board/sheets"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// StateDTO is the full dashboard view the kiosk renders from.
type StateDTO struct {
	Year          int                  `json:"year"`
	DisplayMonth  int                  `json:"displayMonth"`
	Months        []board.MonthlyData  `json:"months"`
	YearOverview  []MonthSummaryDTO    `json:"yearOverview"`
	Statistics    board.Statistics     `json:"statistics"`
	Streak        int                  `json:"streak"`
	Announcements []board.Announcement `json:"announcements"` // newest first
	Incidents     []board.Incident     `json:"incidents"`     // newest first
	ManHoursYear  int                  `json:"manHoursYear"`
	PolicyImage   *string              `json:"policyImage"`
	Sync          SyncDTO              `json:"sync"`
}

// MonthSummaryDTO backs the year-overview tiles.
type MonthSummaryDTO struct {
	Month      int  `json:"month"`
	Completed  bool `json:"completed"`
	NormalDays int  `json:"normalDays"`
	TotalDays  int  `json:"totalDays"`
}

// SyncDTO combines the sync status with its derived machine state.
type SyncDTO struct {
	State  sheets.State  `json:"state"`
	Status sheets.Status `json:"status"`
}

// SyncConfigDTO is returned from the sync settings endpoints.
type SyncConfigDTO struct {
	Config sheets.Config `json:"config"`
	State  sheets.State  `json:"state"`
}

// ImportResultDTO reports whether an uploaded snapshot was applied.
// A rejected snapshot is not an HTTP error: the import contract is a
// silent no-op on bad input, and the flag only exists so the UI can say
// which of the two happened.
type ImportResultDTO struct {
	Applied bool `json:"applied"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SetYearRequest activates a year.
type SetYearRequest struct {
	Year int `json:"year"`
}

// SelectMonthRequest moves the displayed-month cursor.
type SelectMonthRequest struct {
	Month int `json:"month"`
}

// AnnouncementRequest creates or edits an announcement.
type AnnouncementRequest struct {
	Text string `json:"text"`
}

// IncidentRequest creates an incident log entry.
type IncidentRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Type  string `json:"type"` // firstAid | fire | nearMiss
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
}

// ManHoursRequest sets the KPI denominator.
type ManHoursRequest struct {
	ManHoursYear int `json:"manHoursYear"`
}

// PolicyImageRequest replaces the policy poster with a data URI.
type PolicyImageRequest struct {
	Image string `json:"image"`
}
