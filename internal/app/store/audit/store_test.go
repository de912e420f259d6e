package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/announcehub/internal/app/store/audit"
	"github.com/dalemusser/announcehub/internal/testutil"
)

func TestStore_Log_FillsIDAndTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	err := store.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Actor:     "alice",
		IP:        "192.168.1.1",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Timestamp.Before(before) {
		t.Errorf("Timestamp %v should be after %v", events[0].Timestamp, before)
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, e := range []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Actor: "alice", Success: true},
		{Category: audit.CategoryAnnouncements, EventType: audit.EventAnnouncementCreated, Actor: "alice", Success: true},
		{Category: audit.CategoryAnnouncements, EventType: audit.EventAnnouncementDeleted, Actor: "bob", Success: true},
	} {
		e.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	byCat, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAnnouncements})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(byCat) != 2 || byCat[0].EventType != audit.EventAnnouncementDeleted {
		t.Errorf("expected 2 announcement events newest first, got %+v", byCat)
	}

	byActor, _ := store.Query(ctx, audit.QueryFilter{Actor: "alice"})
	if len(byActor) != 2 {
		t.Errorf("expected 2 events for alice, got %d", len(byActor))
	}

	since := base.Add(90 * time.Second)
	recent, _ := store.Query(ctx, audit.QueryFilter{Since: &since})
	if len(recent) != 1 || recent[0].Actor != "bob" {
		t.Errorf("expected only bob's event, got %+v", recent)
	}

	limited, _ := store.GetRecent(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("expected limit 1, got %d", len(limited))
	}
}
