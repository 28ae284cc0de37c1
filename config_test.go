package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("embedded default config should load: %v", err)
	}

	if config.Funding.TotalAmount != 1000000 {
		t.Errorf("expected total amount 1000000, got %.0f", config.Funding.TotalAmount)
	}
	if config.Funding.Years != 5 {
		t.Errorf("expected 5 year horizon, got %d", config.Funding.Years)
	}

	// "7%" in the YAML becomes 0.07
	if math.Abs(config.Funding.InterestRate-0.07) > 1e-9 {
		t.Errorf("expected interest rate 0.07, got %v", config.Funding.InterestRate)
	}

	// The shipped jurisdiction matches the built-in tables
	jur := config.GetJurisdiction()
	if err := jur.Validate(); err != nil {
		t.Fatalf("default jurisdiction should validate: %v", err)
	}
	if len(jur.Federal) != 5 || len(jur.Provincial) != 7 {
		t.Errorf("expected 5 federal and 7 provincial brackets, got %d and %d",
			len(jur.Federal), len(jur.Provincial))
	}
	if math.Abs(jur.Federal[1].Rate-0.205) > 1e-9 {
		t.Errorf("expected second federal rate 0.205, got %v", jur.Federal[1].Rate)
	}
	if math.Abs(jur.InclusionRate-0.5) > 1e-9 {
		t.Errorf("expected inclusion rate 0.5, got %v", jur.InclusionRate)
	}

	if config.Sensitivity.YearsMin != 2 || config.Sensitivity.YearsMax != 8 {
		t.Errorf("unexpected sensitivity year range: %d..%d",
			config.Sensitivity.YearsMin, config.Sensitivity.YearsMax)
	}
}

func TestDefaultConfigMatchesBuiltinJurisdiction(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shipped := config.GetJurisdiction()
	builtin := CanadaBC2024()

	// Same tables means same tax on any gain; spot-check a few
	for _, gain := range []float64{10000, 150000, 300000} {
		a, err := CalculateCapitalGainsTax(gain, shipped)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := CalculateCapitalGainsTax(gain, builtin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(a-b) > taxTolerance {
			t.Errorf("gain %.0f: shipped config taxes %.2f, builtin taxes %.2f", gain, a, b)
		}
	}
}

func TestPreprocessPercentages(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"rate: 7%", "rate: 0.07"},
		{"rate: 20.5%", "rate: 0.205"},
		{"rate: 5.06%", "rate: 0.0506"},
		{"rate: 0.07", "rate: 0.07"},     // already decimal, untouched
		{"rate: 100%", "rate: 1"},
		{"name: \"50% off\"", "name: \"50% off\""}, // no key-value match, untouched
	}

	for _, tc := range tests {
		if got := preprocessPercentages(tc.input); got != tc.expected {
			t.Errorf("preprocessPercentages(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestGetJurisdictionFallback(t *testing.T) {
	config := &Config{}

	jur := config.GetJurisdiction()
	if jur.Name != CanadaBC2024().Name {
		t.Errorf("empty config should fall back to the builtin jurisdiction, got %q", jur.Name)
	}
	if err := jur.Validate(); err != nil {
		t.Errorf("fallback jurisdiction should validate: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := &Config{
		Funding: FundingPlan{
			TotalAmount:  750000,
			AssetValue:   200000,
			CapitalGain:  120000,
			InterestRate: 0.065,
			Years:        4,
		},
		Jurisdiction: CanadaBC2024(),
	}

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// The saved file carries the instructional header
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Renovation Funding Tax Optimizer Configuration") {
		t.Error("saved config is missing its header comment")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Funding != original.Funding {
		t.Errorf("funding plan changed across save/load: %+v vs %+v", loaded.Funding, original.Funding)
	}
	if len(loaded.Jurisdiction.Federal) != len(original.Jurisdiction.Federal) {
		t.Errorf("bracket table changed across save/load")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestEnsureSensitivityDefaults(t *testing.T) {
	config := &Config{}
	ensureSensitivityDefaults(config)

	if config.Sensitivity.InterestRateMin == 0 && config.Sensitivity.InterestRateMax == 0 {
		t.Error("interest rate range should be defaulted")
	}
	if config.Sensitivity.InterestRateStep == 0 {
		t.Error("interest rate step should be defaulted")
	}
	if config.Sensitivity.YearsMin == 0 || config.Sensitivity.YearsMax == 0 {
		t.Error("year range should be defaulted")
	}

	// Explicit settings survive
	config = &Config{Sensitivity: SensitivityConfig{
		InterestRateMin:  0.05,
		InterestRateMax:  0.06,
		InterestRateStep: 0.005,
		YearsMin:         3,
		YearsMax:         4,
	}}
	ensureSensitivityDefaults(config)
	if config.Sensitivity.InterestRateMin != 0.05 || config.Sensitivity.YearsMax != 4 {
		t.Errorf("explicit sensitivity settings were overwritten: %+v", config.Sensitivity)
	}
}
