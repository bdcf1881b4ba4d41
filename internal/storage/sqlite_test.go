package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Track: "neon.wav", Tier: "normal", Outcome: "restart", Completion: 34.5, Jumps: 12},
		{Track: "neon.wav", Tier: "normal", Outcome: "completed", Completion: 100, Jumps: 58},
		{Track: "neon.wav", Tier: "hard", Outcome: "restart", Completion: 12.0, Jumps: 4},
		{Track: "lofi.wav", Tier: "easy", Outcome: "completed", Completion: 100, Jumps: 31},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	neon, err := store.TrackRuns("neon.wav", 10)
	if err != nil {
		t.Fatalf("TrackRuns() failed: %v", err)
	}
	if len(neon) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(neon))
	}

	// Best completion first
	if neon[0].Completion != 100 {
		t.Errorf("Expected best run first, got completion %v", neon[0].Completion)
	}
	if neon[0].Outcome != "completed" {
		t.Errorf("Expected completed outcome, got %q", neon[0].Outcome)
	}

	lofi, err := store.TrackRuns("lofi.wav", 10)
	if err != nil {
		t.Fatalf("TrackRuns() failed: %v", err)
	}
	if len(lofi) != 1 {
		t.Errorf("Expected 1 lofi run, got %d", len(lofi))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Track: "t.wav", Tier: "normal", Outcome: "restart", Completion: float64(i * 10)})
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(recent))
	}

	// Newest first
	if recent[0].Completion != 40 {
		t.Errorf("Expected most recent run first, got completion %v", recent[0].Completion)
	}
}

func TestStoreBestCompletion(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestCompletion("neon.wav", "normal")
	if err != nil {
		t.Fatalf("BestCompletion() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty track, got %v", best)
	}

	store.SaveRun(RunRecord{Track: "neon.wav", Tier: "normal", Outcome: "restart", Completion: 42.5})
	store.SaveRun(RunRecord{Track: "neon.wav", Tier: "normal", Outcome: "restart", Completion: 87.5})
	store.SaveRun(RunRecord{Track: "neon.wav", Tier: "hard", Outcome: "restart", Completion: 99})

	best, err = store.BestCompletion("neon.wav", "normal")
	if err != nil {
		t.Fatalf("BestCompletion() failed: %v", err)
	}
	if best != 87.5 {
		t.Errorf("Expected best of 87.5 on normal, got %v", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Track: "a.wav", Tier: "normal", Outcome: "restart", Completion: 10})
	store.SaveRun(RunRecord{Track: "a.wav", Tier: "normal", Outcome: "restart", Completion: 20})
	store.SaveRun(RunRecord{Track: "b.wav", Tier: "normal", Outcome: "restart", Completion: 30})

	if err := store.ClearRuns("a.wav"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	aRuns, _ := store.TrackRuns("a.wav", 10)
	if len(aRuns) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(aRuns))
	}

	bRuns, _ := store.TrackRuns("b.wav", 10)
	if len(bRuns) != 1 {
		t.Errorf("Other tracks should not be affected by clearing")
	}
}

func TestStoreTrackStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Track: "neon.wav", Tier: "normal", Outcome: "restart", Completion: 50, Jumps: 10})
	store.SaveRun(RunRecord{Track: "neon.wav", Tier: "normal", Outcome: "completed", Completion: 100, Jumps: 40})

	stats, err := store.GetTrackStats("neon.wav")
	if err != nil {
		t.Fatalf("GetTrackStats() failed: %v", err)
	}

	if stats.Plays != 2 {
		t.Errorf("Plays = %d, want 2", stats.Plays)
	}
	if stats.Completions != 1 {
		t.Errorf("Completions = %d, want 1", stats.Completions)
	}
	if stats.BestCompletion != 100 {
		t.Errorf("BestCompletion = %v, want 100", stats.BestCompletion)
	}
	if stats.AvgCompletion != 75 {
		t.Errorf("AvgCompletion = %v, want 75", stats.AvgCompletion)
	}
	if stats.TotalJumps != 50 {
		t.Errorf("TotalJumps = %d, want 50", stats.TotalJumps)
	}
}

func TestStoreAllTrackStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Track: "a.wav", Tier: "easy", Outcome: "completed", Completion: 100, Jumps: 5})
	store.SaveRun(RunRecord{Track: "b.wav", Tier: "hard", Outcome: "restart", Completion: 25, Jumps: 2})

	stats, err := store.GetAllTrackStats()
	if err != nil {
		t.Fatalf("GetAllTrackStats() failed: %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 tracks, got %d", len(stats))
	}
	if stats["a.wav"].BestCompletion != 100 {
		t.Errorf("a.wav best = %v, want 100", stats["a.wav"].BestCompletion)
	}
	if stats["b.wav"].Plays != 1 {
		t.Errorf("b.wav plays = %d, want 1", stats["b.wav"].Plays)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
