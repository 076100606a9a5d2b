package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{GameID: "hop", Score: 4}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("hop")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 4 {
		t.Errorf("BestScore() = %d, want 4", best)
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "hop", Player: "ana", Score: 3, Distance: 20.5, Ticks: 300, Cause: "fallen"},
		{GameID: "hop", Player: "ana", Score: 9, Distance: 60, Ticks: 900, Cause: "hazard"},
		{GameID: "hop", Player: "bo", Score: 9, Distance: 75, Ticks: 950, Cause: "fallen"},
		{GameID: "hop_calm", Player: "bo", Score: 20, Distance: 120, Ticks: 2000, Cause: "fallen"},
	}
	ids := make(map[string]bool)
	for _, r := range runs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("SaveRun() returned empty or duplicate id %q", id)
		}
		ids[id] = true
	}

	top, err := store.TopRuns("hop", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns() returned %d runs, want 3", len(top))
	}

	// Ties on score break by distance
	if top[0].Player != "bo" || top[1].Player != "ana" || top[2].Score != 3 {
		t.Errorf("unexpected order: %+v", top)
	}
	if top[0].Distance != 75 || top[0].Ticks != 950 || top[0].Cause != "fallen" {
		t.Errorf("fields not round-tripped: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	limited, err := store.TopRuns("hop", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopRuns(limit 2) returned %d runs", len(limited))
	}
}

func TestStoreSaveRunRequiresGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Score: 1}); err == nil {
		t.Error("SaveRun() without game id succeeded")
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveRun(Run{ID: "fixed-id", GameID: "hop"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() id = %q, want fixed-id", id)
	}
	if _, err := store.SaveRun(Run{ID: "fixed-id", GameID: "hop"}); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := store.SaveRun(Run{
			GameID:    "hop",
			Score:     i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentRuns() returned %d runs, want 3", len(recent))
	}
	if recent[0].Score != 4 || recent[2].Score != 2 {
		t.Errorf("RecentRuns() order = %d, %d, %d", recent[0].Score, recent[1].Score, recent[2].Score)
	}
	if !recent[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", recent[0].CreatedAt, base.Add(4*time.Minute))
	}
}

func TestStoreBestScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("nonexistent")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() = %d, want 0", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{GameID: "hop", Score: 1})
	store.SaveRun(Run{GameID: "hop_calm", Score: 2})

	if err := store.ClearRuns("hop"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("hop", 10)
	if len(runs) != 0 {
		t.Errorf("hop still has %d runs", len(runs))
	}
	runs, _ = store.TopRuns("hop_calm", 10)
	if len(runs) != 1 {
		t.Errorf("hop_calm has %d runs, want 1", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{GameID: "hop", Score: 2, Distance: 10, Ticks: 100})
	store.SaveRun(Run{GameID: "hop", Score: 6, Distance: 30, Ticks: 300})
	store.SaveRun(Run{GameID: "hop_marathon", Score: 40, Distance: 40, Ticks: 500})

	stats, err := store.Stats("hop")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 6 || stats.AvgScore != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.BestDistance != 30 || stats.TotalTicks != 400 {
		t.Errorf("distance/ticks = %v/%d, want 30/400", stats.BestDistance, stats.TotalTicks)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not parsed")
	}

	empty, err := store.Stats("nothing")
	if err != nil {
		t.Fatalf("Stats() on empty game failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["hop_marathon"].BestScore != 40 {
		t.Errorf("AllStats() = %v", all)
	}
}
