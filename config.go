package main

import (
	_ "embed"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// SensitivityConfig holds the ranges swept by sensitivity analysis
type SensitivityConfig struct {
	InterestRateMin  float64 `yaml:"interest_rate_min" json:"interest_rate_min"`   // e.g. 0.03 = 3%
	InterestRateMax  float64 `yaml:"interest_rate_max" json:"interest_rate_max"`   // e.g. 0.12 = 12%
	InterestRateStep float64 `yaml:"interest_rate_step" json:"interest_rate_step"` // e.g. 0.01 = 1%
	YearsMin         int     `yaml:"years_min" json:"years_min"`
	YearsMax         int     `yaml:"years_max" json:"years_max"`
}

// Config holds the complete configuration
type Config struct {
	Funding      FundingPlan       `yaml:"funding" json:"funding"`
	Jurisdiction Jurisdiction      `yaml:"jurisdiction" json:"jurisdiction"`
	Sensitivity  SensitivityConfig `yaml:"sensitivity" json:"sensitivity"`
}

// GetJurisdiction returns the configured jurisdiction, falling back to the
// built-in Canada/BC 2024 tables when the config carries none.
func (c *Config) GetJurisdiction() Jurisdiction {
	if len(c.Jurisdiction.Federal) == 0 && len(c.Jurisdiction.Provincial) == 0 {
		return CanadaBC2024()
	}
	return c.Jurisdiction
}

// LoadConfig loads configuration from a YAML file. Percentage values like
// "7%" are converted to decimals before parsing.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	content := preprocessPercentages(string(data))

	var config Config
	err = yaml.Unmarshal([]byte(content), &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Add a header comment with instructions
	header := []byte(`# Renovation Funding Tax Optimizer Configuration
# Generated interactively - feel free to edit manually
#
# ═══════════════════════════════════════════════════════════════════════════
# WHAT THIS TOOL DOES
# ═══════════════════════════════════════════════════════════════════════════
#
# Given a large expenditure funded by selling an appreciated asset and/or
# drawing on a line of credit, it searches 11 candidate liquidation
# schedules (varying how much of the asset is sold in year 1, remainder
# spread evenly) and reports the one minimizing tax + interest.
#
# ═══════════════════════════════════════════════════════════════════════════
# VALUE FORMATS
# ═══════════════════════════════════════════════════════════════════════════
#   Percentages: 0.07 or 7% (both accepted)
#   Money: values are in CAD (e.g., 350000 = C$350k)
#
# ═══════════════════════════════════════════════════════════════════════════
# RUN COMMANDS
# ═══════════════════════════════════════════════════════════════════════════
#   ./reno-fund-optimization                  Optimize and print the schedule
#   ./reno-fund-optimization -details         Year-by-year for all 11 scenarios
#   ./reno-fund-optimization -html            Interactive HTML report
#   ./reno-fund-optimization -pdf             One-page PDF summary
#   ./reno-fund-optimization -sensitivity     Sweep interest rates x horizons
#   ./reno-fund-optimization -web             Web server mode
#   ./reno-fund-optimization -help            Show all options
#
# See default-config.yaml for all available options with detailed comments.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration from the embedded
// default-config.yaml, handling percentage format (e.g., "7%" -> 0.07).
func LoadDefaultConfig() (*Config, error) {
	content := preprocessPercentages(defaultConfigYAML)

	var config Config
	err := yaml.Unmarshal([]byte(content), &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// preprocessPercentages converts percentage values like "7%" to decimal "0.07"
func preprocessPercentages(content string) string {
	// Match patterns like: key: 7% or rate: 20.5%
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// ensureSensitivityDefaults fills in missing sensitivity values from the
// embedded default-config.yaml.
func ensureSensitivityDefaults(config *Config) {
	defaults, err := LoadDefaultConfig()
	if err != nil {
		// Fallback to hardcoded defaults matching default-config.yaml
		if config.Sensitivity.InterestRateMin == 0 && config.Sensitivity.InterestRateMax == 0 {
			config.Sensitivity.InterestRateMin = 0.03
			config.Sensitivity.InterestRateMax = 0.12
		}
		if config.Sensitivity.InterestRateStep == 0 {
			config.Sensitivity.InterestRateStep = 0.01
		}
		if config.Sensitivity.YearsMin == 0 {
			config.Sensitivity.YearsMin = 2
		}
		if config.Sensitivity.YearsMax == 0 {
			config.Sensitivity.YearsMax = 8
		}
		return
	}

	if config.Sensitivity.InterestRateMin == 0 && config.Sensitivity.InterestRateMax == 0 {
		config.Sensitivity.InterestRateMin = defaults.Sensitivity.InterestRateMin
		config.Sensitivity.InterestRateMax = defaults.Sensitivity.InterestRateMax
	}
	if config.Sensitivity.InterestRateStep == 0 {
		config.Sensitivity.InterestRateStep = defaults.Sensitivity.InterestRateStep
	}
	if config.Sensitivity.YearsMin == 0 {
		config.Sensitivity.YearsMin = defaults.Sensitivity.YearsMin
	}
	if config.Sensitivity.YearsMax == 0 {
		config.Sensitivity.YearsMax = defaults.Sensitivity.YearsMax
	}
}
