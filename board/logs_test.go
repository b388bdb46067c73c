package board

import (
	"testing"
	"time"
)

// =============================================================================
// ANNOUNCEMENTS
// =============================================================================

func TestAnnouncementLog_AppendOrder(t *testing.T) {
	var l AnnouncementLog
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	a1, ok := l.Add("first", t0)
	if !ok || a1.ID == "" {
		t.Fatal("add should succeed with a fresh id")
	}
	a2, _ := l.Add("second", t0.Add(time.Hour))

	items := l.Items()
	if len(items) != 2 || items[0].ID != a1.ID || items[1].ID != a2.ID {
		t.Errorf("storage order must be oldest-first: %+v", items)
	}

	recent := l.Recent()
	if recent[0].ID != a2.ID {
		t.Errorf("Recent must lead with the newest notice")
	}
}

func TestAnnouncementLog_EmptyTextRejected(t *testing.T) {
	var l AnnouncementLog
	if _, ok := l.Add("   \t ", time.Now()); ok {
		t.Error("whitespace-only text must be silently rejected")
	}
	if l.Len() != 0 {
		t.Error("rejected add must not grow the log")
	}
}

func TestAnnouncementLog_EditAndDelete(t *testing.T) {
	var l AnnouncementLog
	a, _ := l.Add("typo", time.Now())

	if !l.Edit(a.ID, "fixed") {
		t.Fatal("edit of existing id should succeed")
	}
	if l.Items()[0].Text != "fixed" {
		t.Error("edit must replace text in place")
	}
	if l.Edit(a.ID, "  ") {
		t.Error("edit to empty text must be rejected")
	}
	if l.Edit("no-such-id", "x") {
		t.Error("edit of unknown id must be a no-op")
	}

	if l.Delete("no-such-id") {
		t.Error("deleting an unknown id must be a no-op")
	}
	if !l.Delete(a.ID) {
		t.Error("deleting an existing id should succeed")
	}
	if l.Len() != 0 {
		t.Error("log should be empty after delete")
	}
}

// =============================================================================
// INCIDENTS
// =============================================================================

func TestIncidentLog_PrependOrder(t *testing.T) {
	var l IncidentLog
	first, _ := l.Add("2026-01-05", IncidentFirstAid, "cut finger", "")
	second, _ := l.Add("2026-01-08", IncidentFire, "bin fire", "extinguished fast")

	items := l.Items()
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("incidents must be newest-first: %+v", items)
	}
}

func TestIncidentLog_EmptyTitleRejected(t *testing.T) {
	var l IncidentLog
	if _, ok := l.Add("2026-01-05", IncidentNearMiss, "   ", "note"); ok {
		t.Error("empty title must be silently rejected")
	}
	if l.Len() != 0 {
		t.Error("rejected add must not grow the log")
	}
}

func TestIncidentLog_DeleteUnknownNoOp(t *testing.T) {
	var l IncidentLog
	in, _ := l.Add("2026-01-05", IncidentFirstAid, "slip", "")

	if l.Delete("missing") {
		t.Error("deleting a missing id must report no change")
	}
	if l.Len() != 1 || l.Items()[0].ID != in.ID {
		t.Error("log contents must be unchanged after a missed delete")
	}
}

func TestIncidentLog_Clear(t *testing.T) {
	var l IncidentLog
	if l.Clear() {
		t.Error("clearing an empty log must report no change")
	}
	l.Add("2026-01-05", IncidentFire, "bin fire", "")
	if !l.Clear() {
		t.Error("clearing a non-empty log must report a change")
	}
	if l.Len() != 0 {
		t.Error("log should be empty after clear")
	}
}

func TestValidIncidentType(t *testing.T) {
	for _, typ := range []IncidentType{IncidentFirstAid, IncidentFire, IncidentNearMiss} {
		if !ValidIncidentType(typ) {
			t.Errorf("%q should be valid", typ)
		}
	}
	if ValidIncidentType("explosion") {
		t.Error("unknown type should be invalid")
	}
}
