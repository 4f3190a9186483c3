package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AdrianBisson/YEN/config"
)

// BoardEntry represents a finished snake's run on the leaderboard.
type BoardEntry struct {
	SnakeID      uint32
	Player       bool
	Score        float64
	NibblesEaten int
	PeakLength   int
	Survival     float64
	Traits       string
	Cause        string
}

// Leaderboard keeps the top finished runs, sorted descending by score.
type Leaderboard struct {
	entries []BoardEntry
	maxSize int
}

// NewLeaderboard creates a leaderboard with the given capacity.
func NewLeaderboard(maxSize int) *Leaderboard {
	if maxSize < 1 {
		maxSize = 10
	}
	return &Leaderboard{
		entries: make([]BoardEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider evaluates a finished snake for a leaderboard spot.
// Returns true if the run was added.
func (lb *Leaderboard) Consider(stats *LifeStats, snakeID uint32) bool {
	if stats == nil {
		return false
	}
	cfg := config.Cfg().Leaderboard
	if !cfg.Enabled {
		return false
	}
	if !meetsEntryCriteria(stats, cfg) {
		return false
	}

	entry := BoardEntry{
		SnakeID:      snakeID,
		Player:       stats.Player,
		Score:        calculateScore(stats, cfg),
		NibblesEaten: stats.NibblesEaten,
		PeakLength:   stats.PeakLength,
		Survival:     stats.SurvivalTimeSec,
		Traits:       stats.Traits.String(),
		Cause:        stats.Cause,
	}

	lb.entries = lb.insertEntry(lb.entries, entry)
	return true
}

// meetsEntryCriteria checks if a run qualifies for the board.
func meetsEntryCriteria(stats *LifeStats, cfg config.LeaderboardConfig) bool {
	if stats.SurvivalTimeSec < cfg.Entry.MinLifeSec {
		return false
	}
	return stats.NibblesEaten >= cfg.Entry.MinNibbles
}

// calculateScore computes the weighted run score.
func calculateScore(stats *LifeStats, cfg config.LeaderboardConfig) float64 {
	score := float64(stats.NibblesEaten) * cfg.Fitness.NibblesWeight
	score += stats.SurvivalTimeSec * cfg.Fitness.SurvivalWeight
	score += float64(stats.PeakLength) * cfg.Fitness.LengthWeight
	return score
}

// insertEntry adds an entry, maintaining sorted order by score.
// If the board is full, the lowest-score entry is removed.
func (lb *Leaderboard) insertEntry(entries []BoardEntry, entry BoardEntry) []BoardEntry {
	// Find insertion point (sorted descending by score)
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Score < entry.Score
	})

	// If board is full and entry would fall off the end, skip it
	if len(entries) >= lb.maxSize && idx >= lb.maxSize {
		return entries
	}

	// Insert at position
	entries = append(entries, BoardEntry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = entry

	// Trim if over capacity
	if len(entries) > lb.maxSize {
		entries = entries[:lb.maxSize]
	}

	return entries
}

// Size returns the number of entries on the board.
func (lb *Leaderboard) Size() int {
	return len(lb.entries)
}

// TopScore returns the highest score, or 0 if the board is empty.
func (lb *Leaderboard) TopScore() float64 {
	if len(lb.entries) == 0 {
		return 0
	}
	return lb.entries[0].Score
}

// Entries returns the board entries in rank order.
func (lb *Leaderboard) Entries() []BoardEntry {
	return lb.entries
}

// boardEntryJSON is the JSON-serializable representation of a board entry.
type boardEntryJSON struct {
	SnakeID      uint32  `json:"snake_id"`
	Player       bool    `json:"player"`
	Score        float64 `json:"score"`
	NibblesEaten int     `json:"nibbles_eaten"`
	PeakLength   int     `json:"peak_length"`
	Survival     float64 `json:"survival_sec"`
	Traits       string  `json:"traits"`
	Cause        string  `json:"cause"`
}

// MarshalJSON serializes the leaderboard to JSON.
func (lb *Leaderboard) MarshalJSON() ([]byte, error) {
	export := make([]boardEntryJSON, len(lb.entries))
	for i, e := range lb.entries {
		export[i] = boardEntryJSON{
			SnakeID:      e.SnakeID,
			Player:       e.Player,
			Score:        e.Score,
			NibblesEaten: e.NibblesEaten,
			PeakLength:   e.PeakLength,
			Survival:     e.Survival,
			Traits:       e.Traits,
			Cause:        e.Cause,
		}
	}
	return json.MarshalIndent(map[string][]boardEntryJSON{"entries": export}, "", "  ")
}

// LoadLeaderboardFromFile reads a leaderboard JSON file. maxSize caps
// the restored board; entries beyond it are dropped in rank order.
func LoadLeaderboardFromFile(path string, maxSize int) (*Leaderboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	var raw map[string][]boardEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing leaderboard JSON: %w", err)
	}

	lb := NewLeaderboard(maxSize)
	for _, ej := range raw["entries"] {
		entry := BoardEntry{
			SnakeID:      ej.SnakeID,
			Player:       ej.Player,
			Score:        ej.Score,
			NibblesEaten: ej.NibblesEaten,
			PeakLength:   ej.PeakLength,
			Survival:     ej.Survival,
			Traits:       ej.Traits,
			Cause:        ej.Cause,
		}
		lb.entries = lb.insertEntry(lb.entries, entry)
	}

	return lb, nil
}
