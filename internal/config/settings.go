package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Settings is the small operator-tunable blob persisted across restarts.
// Absence or corruption of the file falls back to the documented defaults.
type Settings struct {
	RefreshRateSeconds     int               `json:"refreshRateSeconds"`
	BenchmarkMinutes       float64           `json:"benchmarkMinutes"`
	WarnThresholdPercent   int               `json:"warnThresholdPercent"`
	AnimationEnabled       bool              `json:"animationEnabled"`
	AnimationPeriodSeconds int               `json:"animationPeriodSeconds"`
	TargetHours            float64           `json:"targetHours"`
	ChartModes             map[string]string `json:"chartModes,omitempty"`
}

// DefaultSettings returns the documented fallback values.
func DefaultSettings() Settings {
	return Settings{
		RefreshRateSeconds:     600,
		BenchmarkMinutes:       60,
		WarnThresholdPercent:   95,
		AnimationEnabled:       true,
		AnimationPeriodSeconds: 8,
		TargetHours:            10,
	}
}

// SettingsStore reads and writes the settings blob in the data path.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a store rooted at dataPath.
func NewSettingsStore(dataPath string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dataPath, "settings.json")}
}

// Load reads the persisted settings, falling back to defaults on any failure.
func (s *SettingsStore) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("Failed to read settings, using defaults")
		}
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Corrupt settings file, using defaults")
		return DefaultSettings()
	}

	// Guard nonsensical persisted values
	if settings.RefreshRateSeconds <= 0 {
		settings.RefreshRateSeconds = DefaultSettings().RefreshRateSeconds
	}
	if settings.BenchmarkMinutes <= 0 {
		settings.BenchmarkMinutes = DefaultSettings().BenchmarkMinutes
	}

	return settings
}

// Save persists the settings atomically via a temp file rename.
func (s *SettingsStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp settings file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename settings file: %w", err)
	}

	log.Info().Str("path", s.path).Msg("Settings saved")
	return nil
}
