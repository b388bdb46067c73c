/*
handlers.go - HTTP handlers for the safety dashboard

PURPOSE:
  Exposes the board's commands and views over REST for the kiosk
  frontend. Handlers parse/validate, call the domain, and serialize;
  no dashboard logic lives here.

ENDPOINTS:
  State:
    GET    /api/state                              Full dashboard view

  Calendar:
    PUT    /api/calendar/year                      Activate a year
    PUT    /api/calendar/month                     Move the cursor
    POST   /api/calendar/{month}/days/{day}/advance Cycle a day's status
    POST   /api/calendar/autofill                  Run the 16:00 policy now

  Logs:
    POST   /api/announcements                      Add announcement
    PUT    /api/announcements/{id}                 Edit announcement text
    DELETE /api/announcements/{id}                 Delete announcement
    POST   /api/incidents                          Add incident
    DELETE /api/incidents/{id}                     Delete incident
    DELETE /api/incidents                          Clear incident log

  Scalars:
    PUT    /api/manhours                           Set man-hours figure
    PUT    /api/policy-image                       Set poster (data URI)
    DELETE /api/policy-image                       Remove poster

  Snapshot:
    GET    /api/export                             Download snapshot JSON
    POST   /api/import                             Upload snapshot JSON

  Sync:
    GET    /api/sync                               Config + state
    PUT    /api/sync                               Save config, restart pulls
    GET    /api/sync/status                        Transient status
    POST   /api/sync/pull                          Pull now
    POST   /api/sync/push                          Push now (needs token)

ERROR HANDLING:
  - 400 for unparsable bodies and invalid input
  - 403 for push without a write token (the read-only state)
  - 404 for unknown ids where the operation is not defined as a no-op
  - 409 for the last-announcement guard
  - 502 for sync failures against the remote endpoint
  Domain no-ops (deleting an unknown incident id, importing a bad
  snapshot) are NOT errors; they return success with no effect, matching
  the core contract.
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/plantops/safety-board/board"
	"github.com/plantops/safety-board/sheets"
)

// maxImportBytes bounds snapshot uploads; posters are embedded as data
// URIs so the limit is generous.
const maxImportBytes = 64 << 20

// Handler holds the dependencies of the HTTP surface.
type Handler struct {
	Board    *board.Board
	Sheets   *sheets.Client
	Puller   *sheets.PullScheduler
	ConfigDB sheets.ConfigStore
	Now      func() time.Time
}

// NewHandler wires a handler with the wall clock.
func NewHandler(b *board.Board, client *sheets.Client, puller *sheets.PullScheduler, configDB sheets.ConfigStore) *Handler {
	return &Handler{Board: b, Sheets: client, Puller: puller, ConfigDB: configDB, Now: time.Now}
}

// =============================================================================
// HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// =============================================================================
// STATE
// =============================================================================

// GetState returns the full dashboard view.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	months := h.Board.Months()
	overview := make([]MonthSummaryDTO, 0, len(months))
	for _, m := range months {
		overview = append(overview, MonthSummaryDTO{
			Month:      m.Month,
			Completed:  m.Completed,
			NormalDays: m.NormalDays(),
			TotalDays:  len(m.Days),
		})
	}

	var img *string
	if v, ok := h.Board.PolicyImage(); ok {
		img = &v
	}

	respondJSON(w, http.StatusOK, StateDTO{
		Year:          h.Board.Year(),
		DisplayMonth:  h.Board.DisplayedMonth(),
		Months:        months,
		YearOverview:  overview,
		Statistics:    h.Board.Statistics(),
		Streak:        h.Board.Streak(),
		Announcements: h.Board.RecentAnnouncements(),
		Incidents:     h.Board.Incidents(),
		ManHoursYear:  h.Board.ManHoursYear(),
		PolicyImage:   img,
		Sync: SyncDTO{
			State:  h.Sheets.State(),
			Status: h.Sheets.Status(),
		},
	})
}

// =============================================================================
// CALENDAR
// =============================================================================

// SetYear activates a year (rebuilding the grid if it changed).
func (h *Handler) SetYear(w http.ResponseWriter, r *http.Request) {
	var req SetYearRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Year < 1970 || req.Year > 9999 {
		respondError(w, http.StatusBadRequest, "year out of range")
		return
	}
	h.Board.SetYear(req.Year)
	w.WriteHeader(http.StatusNoContent)
}

// SelectMonth moves the displayed-month cursor.
func (h *Handler) SelectMonth(w http.ResponseWriter, r *http.Request) {
	var req SelectMonthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.Board.SetDisplayedMonth(req.Month)
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceDay cycles one day's status (the day-click command).
func (h *Handler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	month, err1 := strconv.Atoi(chi.URLParam(r, "month"))
	day, err2 := strconv.Atoi(chi.URLParam(r, "day"))
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "month and day must be integers")
		return
	}
	h.Board.RecordDayStatus(month, day)
	w.WriteHeader(http.StatusNoContent)
}

// TriggerAutoFill runs the 16:00 default policy immediately.
func (h *Handler) TriggerAutoFill(w http.ResponseWriter, r *http.Request) {
	changed := h.Board.AutoFillPastDays(h.Now())
	respondJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

// =============================================================================
// ANNOUNCEMENTS
// =============================================================================

// CreateAnnouncement adds a notice; empty text is rejected at this edge
// with a 400 (the store itself rejects silently).
func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, ok := h.Board.AddAnnouncement(req.Text, h.Now())
	if !ok {
		respondError(w, http.StatusBadRequest, "announcement text must not be empty")
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// UpdateAnnouncement replaces a notice's text.
func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !h.Board.EditAnnouncement(chi.URLParam(r, "id"), req.Text) {
		respondError(w, http.StatusNotFound, "announcement not found or text empty")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAnnouncement removes a notice. The "keep at least one
// announcement" rule lives here, at the UI boundary, not in the store.
func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if len(h.Board.Announcements()) <= 1 {
		respondError(w, http.StatusConflict, "cannot delete the last announcement")
		return
	}
	h.Board.DeleteAnnouncement(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// INCIDENTS
// =============================================================================

// CreateIncident adds an incident log entry.
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req IncidentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	typ := board.IncidentType(req.Type)
	if !board.ValidIncidentType(typ) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown incident type %q", req.Type))
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = h.Now().Format("2006-01-02")
	}
	in, ok := h.Board.AddIncident(date, typ, req.Title, req.Note)
	if !ok {
		respondError(w, http.StatusBadRequest, "incident title must not be empty")
		return
	}
	respondJSON(w, http.StatusCreated, in)
}

// DeleteIncident removes by id. Unknown ids are a domain no-op and
// still return success.
func (h *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	h.Board.DeleteIncident(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ClearIncidents drops the whole log (local only; not pushed until the
// user pushes).
func (h *Handler) ClearIncidents(w http.ResponseWriter, r *http.Request) {
	h.Board.ClearIncidents()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCALARS
// =============================================================================

// SetManHours stores the KPI denominator.
func (h *Handler) SetManHours(w http.ResponseWriter, r *http.Request) {
	var req ManHoursRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ManHoursYear < 0 {
		respondError(w, http.StatusBadRequest, "manHoursYear must be non-negative")
		return
	}
	h.Board.SetManHoursYear(req.ManHoursYear)
	w.WriteHeader(http.StatusNoContent)
}

// policyImagePrefixes is the accepted poster encoding. The image input
// collaborator (file picker) produces these; anything else is rejected
// before the core sees it.
var policyImagePrefixes = []string{
	"data:image/jpeg;base64,",
	"data:image/jpg;base64,",
	"data:image/png;base64,",
}

// SetPolicyImage replaces the poster.
func (h *Handler) SetPolicyImage(w http.ResponseWriter, r *http.Request) {
	var req PolicyImageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	accepted := false
	for _, p := range policyImagePrefixes {
		if strings.HasPrefix(req.Image, p) {
			accepted = true
			break
		}
	}
	if !accepted {
		respondError(w, http.StatusBadRequest, "policy image must be a JPEG or PNG data URI")
		return
	}
	h.Board.SetPolicyImage(req.Image)
	w.WriteHeader(http.StatusNoContent)
}

// ClearPolicyImage removes the poster.
func (h *Handler) ClearPolicyImage(w http.ResponseWriter, r *http.Request) {
	h.Board.ClearPolicyImage()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SNAPSHOT EXPORT / IMPORT
// =============================================================================

// Export streams the current snapshot as a download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.Board.ExportSnapshot(h.Now())
	data, err := snap.Encode()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode snapshot")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="safety-dashboard-%d.json"`, snap.Year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import applies an uploaded snapshot. Bad payloads are a silent no-op
// per the snapshot contract; the response flag tells the UI which case
// occurred.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	respondJSON(w, http.StatusOK, ImportResultDTO{Applied: h.Board.ImportSnapshot(data)})
}

// =============================================================================
// SYNC
// =============================================================================

// GetSyncConfig returns the active sync configuration.
func (h *Handler) GetSyncConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SyncConfigDTO{
		Config: h.Sheets.Config(),
		State:  h.Sheets.State(),
	})
}

// PutSyncConfig saves a new configuration, reconfigures the client and
// restarts the pull schedule (which also fires the immediate pull).
func (h *Handler) PutSyncConfig(w http.ResponseWriter, r *http.Request) {
	var cfg sheets.Config
	if !decodeBody(w, r, &cfg) {
		return
	}
	cfg = cfg.Normalized()
	if err := h.ConfigDB.SaveConfig(r.Context(), cfg); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to persist sync config")
		return
	}
	h.Sheets.Configure(cfg)
	h.Puller.Restart()
	respondJSON(w, http.StatusOK, SyncConfigDTO{Config: cfg, State: h.Sheets.State()})
}

// GetSyncStatus returns the transient status.
func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SyncDTO{State: h.Sheets.State(), Status: h.Sheets.Status()})
}

// PullNow triggers an on-demand pull.
func (h *Handler) PullNow(w http.ResponseWriter, r *http.Request) {
	if err := h.Sheets.Pull(r.Context()); err != nil {
		h.respondSyncError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SyncDTO{State: h.Sheets.State(), Status: h.Sheets.Status()})
}

// PushNow triggers an on-demand push.
func (h *Handler) PushNow(w http.ResponseWriter, r *http.Request) {
	if err := h.Sheets.Push(r.Context()); err != nil {
		h.respondSyncError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SyncDTO{State: h.Sheets.State(), Status: h.Sheets.Status()})
}

func (h *Handler) respondSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sheets.ErrMissingWriteToken):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, sheets.ErrNoEndpoint):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusBadGateway, err.Error())
	}
}
