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

func saveRuns(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for i, score := range scores {
		if _, err := store.SaveRun(Run{GameID: gameID, Score: score, Lines: i, Pieces: 10 * i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
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

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	saveRuns(t, store, "blocks", 300)
	high, err := store.HighScore("blocks")
	if err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}
}

func TestStoreTopScoresOrdering(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store, "blocks", 100, 50, 2000, 100)
	saveRuns(t, store, "other", 9999)

	scores, err := store.TopScores("blocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{2000, 100, 100, 50}
	if len(scores) != len(want) {
		t.Fatalf("got %d scores, expected %d", len(scores), len(want))
	}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "blocks" {
			t.Errorf("scores[%d] belongs to %q", i, scores[i].GameID)
		}
	}
	// Equal scores keep insertion order.
	if scores[1].ID > scores[2].ID {
		t.Error("tied scores should be ordered by id")
	}
	if scores[0].Lines != 2 || scores[0].Pieces != 20 {
		t.Errorf("run details not stored: %+v", scores[0])
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store, "blocks", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	scores, err := store.TopScores("blocks", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 || scores[0].Score != 12 {
		t.Errorf("TopScores(3) = %+v", scores)
	}

	scores, err = store.TopScores("blocks", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("default limit returned %d rows, expected 10", len(scores))
	}

	all, err := store.AllScores("blocks")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 12 {
		t.Errorf("AllScores() returned %d rows, expected 12", len(all))
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, expected 0", high)
	}
}

func TestStoreSaveRunRejectsEmptyGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{Score: 10}); err == nil {
		t.Error("SaveRun without a game id should fail")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store, "blocks", 100, 200)
	saveRuns(t, store, "other", 300)

	n, err := store.ClearScores("blocks")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d rows, expected 2", n)
	}

	scores, _ := store.TopScores("blocks", 10)
	if len(scores) != 0 {
		t.Errorf("expected no blocks scores, got %d", len(scores))
	}
	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Error("clearing one game must not touch another")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blocks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for an unplayed game = %+v", empty)
	}

	// Lines are 0, 1, 2.
	saveRuns(t, store, "blocks", 100, 200, 600)

	stats, err := store.GetGameStats("blocks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, expected 3", stats.GamesCount)
	}
	if stats.HighScore != 600 {
		t.Errorf("HighScore = %d, expected 600", stats.HighScore)
	}
	if stats.AvgScore != 300 {
		t.Errorf("AvgScore = %v, expected 300", stats.AvgScore)
	}
	if stats.TotalLines != 3 {
		t.Errorf("TotalLines = %d, expected 3", stats.TotalLines)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveRuns(t, store, "blocks", 4000)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blocks")
	if err != nil || high != 4000 {
		t.Errorf("HighScore() after reopen = %d, %v", high, err)
	}
}
