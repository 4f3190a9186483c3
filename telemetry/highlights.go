package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/AdrianBisson/YEN/config"
)

// HighlightType identifies the type of highlight.
type HighlightType string

const (
	HighlightPickupFrenzy  HighlightType = "pickup_frenzy"
	HighlightShadowWipeout HighlightType = "shadow_wipeout"
	HighlightCrowdingPeak  HighlightType = "crowding_peak"
	HighlightQuietSpell    HighlightType = "quiet_spell"
)

// Highlight represents an automatically detected notable moment.
type Highlight struct {
	Type        HighlightType `csv:"type"`
	Tick        int32         `csv:"tick"`
	Description string        `csv:"description"`
}

// LogHighlight logs the highlight using slog.
func (h Highlight) LogHighlight() {
	slog.Info("highlight",
		"type", string(h.Type),
		"tick", h.Tick,
		"description", h.Description,
	)
}

// HighlightDetector detects notable moments from the window stats stream.
type HighlightDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	shadowPeak   int // highest shadow count that already triggered
	quietWindows int // consecutive windows with nothing happening
}

// NewHighlightDetector creates a detector with the given history size.
func NewHighlightDetector(historySize int) *HighlightDetector {
	if historySize < 4 {
		historySize = 4 // minimum for quiet spell detection
	}
	return &HighlightDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered highlights.
func (hd *HighlightDetector) Check(stats WindowStats) []Highlight {
	var highlights []Highlight

	if hd.historyFull || hd.historyIdx > 0 {
		if h := hd.checkPickupFrenzy(stats); h != nil {
			highlights = append(highlights, *h)
		}
		if h := hd.checkShadowWipeout(stats); h != nil {
			highlights = append(highlights, *h)
		}
		if h := hd.checkCrowdingPeak(stats); h != nil {
			highlights = append(highlights, *h)
		}
		if h := hd.checkQuietSpell(stats); h != nil {
			highlights = append(highlights, *h)
		}
	}

	hd.addToHistory(stats)

	return highlights
}

func (hd *HighlightDetector) addToHistory(stats WindowStats) {
	hd.history[hd.historyIdx] = stats
	hd.historyIdx = (hd.historyIdx + 1) % hd.historySize
	if hd.historyIdx == 0 {
		hd.historyFull = true
	}
}

func (hd *HighlightDetector) getHistory() []WindowStats {
	if hd.historyFull {
		return hd.history
	}
	return hd.history[:hd.historyIdx]
}

// checkPickupFrenzy fires when window pickups run well ahead of the
// rolling average.
func (hd *HighlightDetector) checkPickupFrenzy(stats WindowStats) *Highlight {
	cfg := config.Cfg().Highlights.PickupFrenzy

	history := hd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Pickups
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Pickups) > avg*cfg.Multiplier && stats.Pickups >= cfg.MinPickups {
		return &Highlight{
			Type:        HighlightPickupFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d pickups is %.1fx the average (%.1f)", stats.Pickups, float64(stats.Pickups)/avg, avg),
		}
	}

	return nil
}

// checkShadowWipeout fires when several shadows dissolve inside one window.
func (hd *HighlightDetector) checkShadowWipeout(stats WindowStats) *Highlight {
	cfg := config.Cfg().Highlights.ShadowWipeout

	shadowDissolves := stats.Dissolves - stats.PlayerDeaths
	if shadowDissolves >= cfg.MinDissolved {
		return &Highlight{
			Type:        HighlightShadowWipeout,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d shadows dissolved in one window", shadowDissolves),
		}
	}

	return nil
}

// checkCrowdingPeak fires once per new record shadow population.
func (hd *HighlightDetector) checkCrowdingPeak(stats WindowStats) *Highlight {
	cfg := config.Cfg().Highlights.CrowdingPeak

	if stats.ShadowCount >= cfg.MinShadows && stats.ShadowCount > hd.shadowPeak {
		hd.shadowPeak = stats.ShadowCount

		return &Highlight{
			Type:        HighlightCrowdingPeak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Arena crowded with %d shadows", stats.ShadowCount),
		}
	}

	return nil
}

// checkQuietSpell fires exactly once after N consecutive windows with
// no pickups, collisions, or spawns.
func (hd *HighlightDetector) checkQuietSpell(stats WindowStats) *Highlight {
	cfg := config.Cfg().Highlights.QuietSpell

	if stats.Pickups == 0 && stats.Collisions == 0 && stats.Spawns == 0 {
		hd.quietWindows++
	} else {
		hd.quietWindows = 0
		return nil
	}

	if hd.quietWindows == cfg.StillWindows {
		return &Highlight{
			Type:        HighlightQuietSpell,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Nothing happened for %d windows", hd.quietWindows),
		}
	}

	return nil
}
