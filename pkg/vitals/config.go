package vitals

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the clinical cut-offs for the threshold classifier.
// High bounds are inclusive, low bounds exclusive, matching the rule
// table in classifier.go.
type Thresholds struct {
	BPHighSystolic  int `yaml:"bp_high_systolic" json:"bp_high_systolic"`
	BPHighDiastolic int `yaml:"bp_high_diastolic" json:"bp_high_diastolic"`
	BPLowSystolic   int `yaml:"bp_low_systolic" json:"bp_low_systolic"`
	BPLowDiastolic  int `yaml:"bp_low_diastolic" json:"bp_low_diastolic"`
	SugarHigh       int `yaml:"sugar_high" json:"sugar_high"`
	SugarLow        int `yaml:"sugar_low" json:"sugar_low"`
	HeartRateHigh   int `yaml:"heart_rate_high" json:"heart_rate_high"`
	HeartRateLow    int `yaml:"heart_rate_low" json:"heart_rate_low"`
}

func LoadThresholds(path string) (Thresholds, error) {
	if path == "" {
		return DefaultThresholds(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultThresholds(), err
	}

	var th Thresholds
	if err := yaml.Unmarshal(content, &th); err != nil {
		return Thresholds{}, err
	}

	if th == (Thresholds{}) {
		return Thresholds{}, errors.New("no vital thresholds configured")
	}

	return th, nil
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		BPHighSystolic:  140,
		BPHighDiastolic: 90,
		BPLowSystolic:   90,
		BPLowDiastolic:  60,
		SugarHigh:       180,
		SugarLow:        70,
		HeartRateHigh:   100,
		HeartRateLow:    60,
	}
}
