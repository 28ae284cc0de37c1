package main

import (
	"fmt"
	"math"
	"os"
	"time"
)

// SensitivityResult holds the result of a single interest rate / horizon combination
type SensitivityResult struct {
	InterestRate  float64
	Years         int
	BestFraction  float64 // optimal year-1 sale as a fraction of asset value
	FirstYearSale float64
	TotalCost     float64
	TotalTax      float64
	TotalInterest float64
}

// SensitivityAnalysis holds the complete analysis
type SensitivityAnalysis struct {
	Results       [][]SensitivityResult // [rateIdx][yearIdx]
	InterestRates []float64
	YearCounts    []int
	Config        *Config
	Timestamp     string
}

// buildRateRange generates a slice of rates from min to max with given step
func buildRateRange(min, max, step float64) []float64 {
	var rates []float64
	for r := min; r <= max+0.0001; r += step { // small epsilon for float comparison
		rates = append(rates, r)
	}
	return rates
}

// RunSensitivityAnalysis re-optimizes the funding plan across a range of
// interest rates and funding horizons.
func RunSensitivityAnalysis(config *Config) (*SensitivityAnalysis, error) {
	ensureSensitivityDefaults(config)
	sens := config.Sensitivity
	jur := config.GetJurisdiction()

	rates := buildRateRange(sens.InterestRateMin, sens.InterestRateMax, sens.InterestRateStep)
	var yearCounts []int
	for y := sens.YearsMin; y <= sens.YearsMax; y++ {
		yearCounts = append(yearCounts, y)
	}

	results := make([][]SensitivityResult, len(rates))
	for ri, rate := range rates {
		results[ri] = make([]SensitivityResult, len(yearCounts))
		for yi, years := range yearCounts {
			plan := config.Funding
			plan.InterestRate = rate
			plan.Years = years

			opt, err := OptimizeFundingMix(plan, jur)
			if err != nil {
				return nil, fmt.Errorf("sensitivity cell (rate %.2f%%, %d years): %w", rate*100, years, err)
			}

			fraction := 0.0
			if plan.AssetValue > 0 {
				fraction = opt.Best.FirstYearSale / plan.AssetValue
			}
			results[ri][yi] = SensitivityResult{
				InterestRate:  rate,
				Years:         years,
				BestFraction:  fraction,
				FirstYearSale: opt.Best.FirstYearSale,
				TotalCost:     opt.Best.TotalCost,
				TotalTax:      opt.Best.TotalTax(),
				TotalInterest: opt.Best.TotalInterest(),
			}
		}
	}

	return &SensitivityAnalysis{
		Results:       results,
		InterestRates: rates,
		YearCounts:    yearCounts,
		Config:        config,
		Timestamp:     time.Now().Format("2006-01-02_1504"),
	}, nil
}

// fractionColor maps a year-1 sale fraction to a heatmap cell color.
// Low fractions (lean on the credit line) are blue, high fractions
// (sell early) are green.
func fractionColor(fraction float64) string {
	colors := []string{
		"#e3f2fd", "#bbdefb", "#b3e5fc", "#b2ebf2",
		"#b2dfdb", "#c8e6c9", "#dcedc8", "#f0f4c3",
		"#e8f5e9", "#a5d6a7", "#81c784",
	}
	idx := int(math.Round(fraction * 10))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(colors) {
		idx = len(colors) - 1
	}
	return colors[idx]
}

// GenerateSensitivityReport writes the sensitivity matrix as an HTML heatmap
func GenerateSensitivityReport(analysis *SensitivityAnalysis, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	plan := analysis.Config.Funding

	// Write HTML header
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Funding Sensitivity Analysis</title>
    <style>
        * { box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0; padding: 20px;
            background: #f5f5f5;
        }
        .container { max-width: 1400px; margin: 0 auto; }
        h1 { color: #1a237e; margin-bottom: 10px; }
        h2 { color: #303f9f; margin-top: 30px; }
        .subtitle { color: #666; margin-bottom: 30px; }

        .config-summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .config-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
        }
        .config-label { font-size: 12px; color: #666; }
        .config-value { font-size: 16px; font-weight: 600; color: #333; }

        .matrix-container {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow-x: auto;
        }
        .matrix {
            border-collapse: collapse;
            margin: 0 auto;
        }
        .matrix th, .matrix td {
            padding: 8px 12px;
            text-align: center;
            border: 1px solid #ddd;
            min-width: 90px;
        }
        .matrix th {
            background: #1a237e;
            color: white;
            font-weight: 600;
        }
        .matrix .row-header {
            background: #303f9f;
            color: white;
            font-weight: 600;
        }
        .matrix td { font-size: 11px; }
        .matrix .fraction { font-weight: 600; }
        .matrix .cost-info { color: #666; font-size: 10px; }

        .footer {
            text-align: center;
            color: #999;
            font-size: 12px;
            margin-top: 30px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Funding Sensitivity Analysis</h1>
        <p class="subtitle">Optimal year-1 asset sale across interest rates and funding horizons</p>

        <div class="config-summary">
            <div class="config-grid">
                <div>
                    <div class="config-label">Total Expenditure</div>
                    <div class="config-value">%s</div>
                </div>
                <div>
                    <div class="config-label">Asset Value</div>
                    <div class="config-value">%s</div>
                </div>
                <div>
                    <div class="config-label">Capital Gain</div>
                    <div class="config-value">%s</div>
                </div>
                <div>
                    <div class="config-label">Jurisdiction</div>
                    <div class="config-value">%s</div>
                </div>
            </div>
        </div>

        <div class="matrix-container">
            <h2>Optimal Year-1 Sale (fraction of asset)</h2>
            <table class="matrix">
                <tr>
                    <th>Interest \ Horizon</th>
`, FormatMoney(plan.TotalAmount), FormatMoney(plan.AssetValue),
		FormatMoney(plan.CapitalGain), analysis.Config.GetJurisdiction().Name)

	for _, years := range analysis.YearCounts {
		fmt.Fprintf(f, "                    <th>%d years</th>\n", years)
	}
	fmt.Fprintf(f, "                </tr>\n")

	for ri, rate := range analysis.InterestRates {
		fmt.Fprintf(f, "                <tr>\n                    <td class=\"row-header\">%.1f%%</td>\n", rate*100)
		for yi := range analysis.YearCounts {
			cell := analysis.Results[ri][yi]
			fmt.Fprintf(f, `                    <td style="background: %s;">
                        <div class="fraction">%.0f%%</div>
                        <div class="cost-info">%s</div>
                    </td>
`, fractionColor(cell.BestFraction), cell.BestFraction*100, FormatMoney(cell.TotalCost))
		}
		fmt.Fprintf(f, "                </tr>\n")
	}

	fmt.Fprintf(f, `            </table>
        </div>

        <div class="footer">
            Generated on %s | Renovation Funding Tax Optimisation
        </div>
    </div>
</body>
</html>
`, time.Now().Format("2006-01-02 15:04:05"))

	return nil
}

// PrintSensitivitySummary prints a compact console view of the matrix
func PrintSensitivitySummary(analysis *SensitivityAnalysis) {
	fmt.Println("Sensitivity: optimal year-1 sale fraction by interest rate and horizon")
	fmt.Println()

	fmt.Printf("  %-10s", "Rate")
	for _, years := range analysis.YearCounts {
		fmt.Printf("  %5dy", years)
	}
	fmt.Println()

	for ri, rate := range analysis.InterestRates {
		fmt.Printf("  %-10s", fmt.Sprintf("%.1f%%", rate*100))
		for yi := range analysis.YearCounts {
			fmt.Printf("  %5.0f%%", analysis.Results[ri][yi].BestFraction*100)
		}
		fmt.Println()
	}
	fmt.Println()
}
