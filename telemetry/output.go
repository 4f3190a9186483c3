package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AdrianBisson/YEN/config"
	"github.com/gocarina/gocsv"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	statsFile     *os.File
	perfFile      *os.File
	highlightFile *os.File

	// Track if headers have been written
	statsHeaderWritten     bool
	perfHeaderWritten      bool
	highlightHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open stats.csv
	statsPath := filepath.Join(dir, "stats.csv")
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	// Open perf.csv
	perfPath := filepath.Join(dir, "perf.csv")
	f, err = os.Create(perfPath)
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	// Open highlights.csv
	highlightPath := filepath.Join(dir, "highlights.csv")
	f, err = os.Create(highlightPath)
	if err != nil {
		om.statsFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating highlights.csv: %w", err)
	}
	om.highlightFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteStats writes a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}

	csvRecord := stats.ToCSV(windowEnd)
	records := []PerfStatsCSV{csvRecord}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteHighlight writes a highlight record to highlights.csv.
func (om *OutputManager) WriteHighlight(h Highlight) error {
	if om == nil {
		return nil
	}

	records := []Highlight{h}

	if !om.highlightHeaderWritten {
		if err := gocsv.Marshal(records, om.highlightFile); err != nil {
			return fmt.Errorf("writing highlight: %w", err)
		}
		om.highlightHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.highlightFile); err != nil {
			return fmt.Errorf("writing highlight: %w", err)
		}
	}

	return nil
}

// WriteLeaderboard saves the leaderboard as JSON.
func (om *OutputManager) WriteLeaderboard(lb *Leaderboard) error {
	if om == nil || lb == nil {
		return nil
	}

	lbPath := filepath.Join(om.dir, "leaderboard.json")
	data, err := lb.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling leaderboard: %w", err)
	}

	if err := os.WriteFile(lbPath, data, 0644); err != nil {
		return fmt.Errorf("writing leaderboard.json: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.highlightFile != nil {
		if err := om.highlightFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
