package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/safety-board/board"
)

func populatedBoard(t *testing.T) *board.Board {
	t.Helper()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	b := board.New(now)
	b.RecordDayStatus(2, 0) // normal
	b.RecordDayStatus(2, 1) // normal
	b.RecordDayStatus(2, 1) // non-absent
	b.AddAnnouncement("Wear your helmet", now)
	b.AddIncident("2026-03-02", board.IncidentFirstAid, "cut finger", "bandaged on site")
	b.SetManHoursYear(150000)
	b.SetPolicyImage("data:image/png;base64,AAAA")
	return b
}

func TestSnapshot_ExportImportRoundTrip(t *testing.T) {
	// GIVEN: A board with calendar entries, logs, poster, and man-hours
	// WHEN: Exporting to bytes and importing into a fresh board
	// THEN: All persisted fields come back equal

	src := populatedBoard(t)
	now := time.Date(2026, time.March, 10, 13, 0, 0, 0, time.UTC)
	data, err := src.ExportSnapshot(now).Encode()
	require.NoError(t, err)

	dst := board.New(time.Date(2030, time.July, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, dst.ImportSnapshot(data), "well-formed snapshot must apply")

	assert.Equal(t, src.Year(), dst.Year())
	assert.Equal(t, src.DisplayedMonth(), dst.DisplayedMonth())
	assert.Equal(t, src.Months(), dst.Months())
	assert.Equal(t, src.Announcements(), dst.Announcements())
	assert.Equal(t, src.Incidents(), dst.Incidents())
	assert.Equal(t, src.ManHoursYear(), dst.ManHoursYear())

	srcImg, srcOK := src.PolicyImage()
	dstImg, dstOK := dst.PolicyImage()
	assert.Equal(t, srcOK, dstOK)
	assert.Equal(t, srcImg, dstImg)
}

func TestSnapshot_ForeignVersionLeavesStateUntouched(t *testing.T) {
	// GIVEN: A populated board and a version-2 snapshot
	// WHEN: Importing it
	// THEN: Import reports failure and every field stays byte-for-byte

	b := populatedBoard(t)
	before := b.ExportSnapshot(time.Time{})

	snap := b.ExportSnapshot(time.Time{})
	snap.Version = 2
	snap.ManHoursYear = 1 // would be visible if wrongly applied
	data, err := snap.Encode()
	require.NoError(t, err)

	assert.False(t, b.ImportSnapshot(data))
	assert.Equal(t, before, b.ExportSnapshot(time.Time{}))
}

func TestSnapshot_MalformedPayloadRejected(t *testing.T) {
	b := populatedBoard(t)
	before := b.ExportSnapshot(time.Time{})

	assert.False(t, b.ImportSnapshot([]byte("{not json")))
	assert.False(t, b.ImportSnapshot(nil))
	assert.Equal(t, before, b.ExportSnapshot(time.Time{}))
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	_, err := board.DecodeSnapshot([]byte("[]"))
	assert.ErrorIs(t, err, board.ErrSnapshotMalformed)

	_, err = board.DecodeSnapshot([]byte(`{"version":7}`))
	assert.ErrorIs(t, err, board.ErrSnapshotVersion)
}

func TestDecodeSnapshot_MissingManHoursDefaults(t *testing.T) {
	// Older exports omit manHoursYear; decode fills the shipped default.
	snap, err := board.DecodeSnapshot([]byte(`{"version":1,"year":2026}`))
	require.NoError(t, err)
	assert.Equal(t, board.DefaultManHoursYear, snap.ManHoursYear)

	snap, err = board.DecodeSnapshot([]byte(`{"version":1,"manHoursYear":5000}`))
	require.NoError(t, err)
	assert.Equal(t, 5000, snap.ManHoursYear)
}

func TestBoard_SeedDefaultAnnouncement(t *testing.T) {
	now := time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)
	b := board.New(now)
	b.SeedDefaultAnnouncement(now)

	items := b.Announcements()
	require.Len(t, items, 1)
	assert.Equal(t, board.SeedAnnouncementText, items[0].Text)

	// Seeding again is a no-op once anything exists.
	b.SeedDefaultAnnouncement(now)
	assert.Len(t, b.Announcements(), 1)
}
