package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AdrianBisson/YEN/traits"
	"gonum.org/v1/gonum/spatial/r3"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete scene state for inspection and replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	ArenaHalf float64 `json:"arena_half"`

	Tick int32 `json:"tick"`

	Snakes  []SnakeState  `json:"snakes"`
	Nibbles []NibbleState `json:"nibbles"`

	Highlight *Highlight `json:"highlight,omitempty"`
}

// SnakeState holds one snake's complete state.
type SnakeState struct {
	ID     uint32 `json:"id"`
	Player bool   `json:"player"`

	// Heading and movement
	Head  r3.Vec  `json:"head"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Speed float64 `json:"speed"`

	// Body
	Trail    []r3.Vec `json:"trail"`
	Segments []r3.Vec `json:"segments"`

	// Game state
	NibblesEaten int          `json:"nibbles_eaten"`
	Traits       traits.Trait `json:"traits"`
	BornTick     int32        `json:"born_tick"`
	InvulnUntil  float64      `json:"invuln_until_ms"`
	ReflectUntil float64      `json:"reflect_until_ms"`
	TargetDir    r3.Vec       `json:"target_dir"`

	// Lifetime stats
	Life *LifeStatsJSON `json:"life,omitempty"`
}

// NibbleState holds one nibble's state.
type NibbleState struct {
	Pos      r3.Vec `json:"pos"`
	FromDrop bool   `json:"from_drop"`
}

// LifeStatsJSON is the JSON-serializable form of LifeStats.
type LifeStatsJSON struct {
	BornTick        int32   `json:"born_tick"`
	SurvivalTimeSec float64 `json:"survival_time_sec"`
	Player          bool    `json:"player"`
	NibblesEaten    int     `json:"nibbles_eaten"`
	PeakLength      int     `json:"peak_length"`
	Distance        float64 `json:"distance"`
	WallClamps      int     `json:"wall_clamps"`
	Crossings       int     `json:"crossings"`
	Cause           string  `json:"cause,omitempty"`
}

// ToJSON converts LifeStats to its JSON form.
func (ls *LifeStats) ToJSON() *LifeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifeStatsJSON{
		BornTick:        ls.BornTick,
		SurvivalTimeSec: ls.SurvivalTimeSec,
		Player:          ls.Player,
		NibblesEaten:    ls.NibblesEaten,
		PeakLength:      ls.PeakLength,
		Distance:        ls.Distance,
		WallClamps:      ls.WallClamps,
		Crossings:       ls.Crossings,
		Cause:           ls.Cause,
	}
}

// FromJSON converts the JSON form back to LifeStats.
func (lsj *LifeStatsJSON) FromJSON() *LifeStats {
	if lsj == nil {
		return nil
	}
	return &LifeStats{
		BornTick:        lsj.BornTick,
		SurvivalTimeSec: lsj.SurvivalTimeSec,
		Player:          lsj.Player,
		NibblesEaten:    lsj.NibblesEaten,
		PeakLength:      lsj.PeakLength,
		Distance:        lsj.Distance,
		WallClamps:      lsj.WallClamps,
		Crossings:       lsj.Crossings,
		Cause:           lsj.Cause,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Highlight != nil {
		// Sanitize highlight type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Highlight.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
