package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/AdrianBisson/YEN/traits"
)

// Config is initialized by the package init in highlights_test.go.

func finishedRun(nibbles, peak int, survival float64) *LifeStats {
	return &LifeStats{
		SurvivalTimeSec: survival,
		NibblesEaten:    nibbles,
		PeakLength:      peak,
		Traits:          traits.Trait(0),
		Cause:           CauseShadow,
	}
}

func TestLeaderboardEntryCriteria(t *testing.T) {
	tests := []struct {
		name  string
		stats *LifeStats
		want  bool
	}{
		{"qualifying run", finishedRun(3, 8, 30), true},
		{"too short a life", finishedRun(3, 8, 2), false},
		{"no nibbles eaten", finishedRun(0, 5, 30), false},
		{"exactly at thresholds", finishedRun(1, 5, 5), true},
		{"nil stats", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lb := NewLeaderboard(10)
			if got := lb.Consider(tc.stats, 1); got != tc.want {
				t.Errorf("Consider() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLeaderboardScoreWeights(t *testing.T) {
	lb := NewLeaderboard(10)

	// Defaults: nibbles*10 + survival*1 + peak_length*2.
	if !lb.Consider(finishedRun(3, 8, 30), 1) {
		t.Fatal("qualifying run rejected")
	}

	want := 3.0*10 + 30.0*1 + 8.0*2
	if got := lb.TopScore(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TopScore() = %v, want %v", got, want)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	lb := NewLeaderboard(10)

	lb.Consider(finishedRun(2, 5, 10), 1) // score 40
	lb.Consider(finishedRun(9, 14, 60), 2) // score 178
	lb.Consider(finishedRun(5, 10, 30), 3) // score 100

	entries := lb.Entries()
	if len(entries) != 3 {
		t.Fatalf("Size = %d, want 3", len(entries))
	}
	if entries[0].SnakeID != 2 || entries[1].SnakeID != 3 || entries[2].SnakeID != 1 {
		t.Errorf("rank order = %d,%d,%d, want 2,3,1",
			entries[0].SnakeID, entries[1].SnakeID, entries[2].SnakeID)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Errorf("entries not sorted descending at %d", i)
		}
	}
}

func TestLeaderboardCapacity(t *testing.T) {
	lb := NewLeaderboard(3)

	for i := 1; i <= 5; i++ {
		// Scores rise with i; later runs should push out earlier ones.
		lb.Consider(finishedRun(i, i, 10), uint32(i))
	}

	if lb.Size() != 3 {
		t.Fatalf("Size = %d, want 3", lb.Size())
	}

	entries := lb.Entries()
	if entries[0].SnakeID != 5 || entries[2].SnakeID != 3 {
		t.Errorf("kept %d..%d, want snakes 5..3", entries[0].SnakeID, entries[2].SnakeID)
	}

	// A run weaker than the current floor is rejected outright.
	if lb.Consider(finishedRun(1, 1, 10), 9) {
		t.Error("run below the floor was admitted to a full board")
	}
}

func TestLeaderboardJSONRoundTrip(t *testing.T) {
	lb := NewLeaderboard(10)
	lb.Consider(finishedRun(3, 8, 30), 1)
	lb.Consider(finishedRun(7, 12, 55), 2)

	data, err := lb.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "leaderboard.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing leaderboard: %v", err)
	}

	loaded, err := LoadLeaderboardFromFile(path, 10)
	if err != nil {
		t.Fatalf("LoadLeaderboardFromFile failed: %v", err)
	}

	if loaded.Size() != lb.Size() {
		t.Errorf("Size after round trip = %d, want %d", loaded.Size(), lb.Size())
	}
	if loaded.TopScore() != lb.TopScore() {
		t.Errorf("TopScore after round trip = %v, want %v", loaded.TopScore(), lb.TopScore())
	}
	if loaded.Entries()[0].Cause != CauseShadow {
		t.Errorf("Cause after round trip = %q, want %q", loaded.Entries()[0].Cause, CauseShadow)
	}
}

func TestLeaderboardLoadMissingFile(t *testing.T) {
	if _, err := LoadLeaderboardFromFile("/nonexistent/leaderboard.json", 10); err == nil {
		t.Error("expected error loading missing leaderboard file")
	}
}
