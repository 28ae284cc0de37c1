package main

import (
	"fmt"
)

// FormatMoney formats a float as a currency string
func FormatMoney(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("C$%.2fM", amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("C$%.0fk", amount/1000)
	}
	return fmt.Sprintf("C$%.0f", amount)
}

// FormatMoneyFull formats a float as full currency (no abbreviation)
func FormatMoneyFull(amount float64) string {
	return fmt.Sprintf("C$%.0f", amount)
}

// PrintHeader prints the optimization header with a configuration summary
func PrintHeader(config *Config) {
	jur := config.GetJurisdiction()
	plan := config.Funding

	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║              RENOVATION FUNDING TAX OPTIMISATION                             ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("──────────────")
	fmt.Printf("  Expenditure: %s over %d years\n", FormatMoney(plan.TotalAmount), plan.Years)
	fmt.Printf("  Asset: %s (unrealized gain %s, %.0f%% of value)\n",
		FormatMoney(plan.AssetValue), FormatMoney(plan.CapitalGain),
		gainShare(plan)*100)
	fmt.Printf("  Credit line: %.2f%% annual interest on the unfunded balance\n",
		plan.InterestRate*100)
	fmt.Printf("  Jurisdiction: %s (inclusion rate %.0f%%)\n", jur.Name, jur.InclusionRate*100)
	fmt.Println()
}

func gainShare(plan FundingPlan) float64 {
	if plan.AssetValue <= 0 {
		return 0
	}
	return plan.CapitalGain / plan.AssetValue
}

// PrintOptimalSchedule prints the year-by-year breakdown of the winning scenario
func PrintOptimalSchedule(result OptimizationResult, config *Config) {
	best := result.Best
	plan := config.Funding

	fmt.Printf("Optimal schedule: %s of %s sold in year 1 (%s)\n",
		FormatMoney(best.FirstYearSale), FormatMoney(plan.AssetValue),
		best.Label(plan.AssetValue))
	fmt.Println()
	fmt.Println("  Year   Asset Sold   Credit Used     Tax Paid   Interest    Year Cost")
	fmt.Println("  ────   ──────────   ───────────   ──────────   ────────   ──────────")
	for _, y := range best.Years {
		fmt.Printf("  %4d   %10s   %11s   %10s   %8s   %10s\n",
			y.Year,
			FormatMoneyFull(y.AssetSold),
			FormatMoneyFull(y.CreditUsed),
			FormatMoneyFull(y.TaxPaid),
			FormatMoneyFull(y.InterestPaid),
			FormatMoneyFull(y.TotalCost))
	}
	fmt.Println("  ────────────────────────────────────────────────────────────────────")
	fmt.Printf("  Total cost: %s (tax %s + interest %s)\n",
		FormatMoneyFull(best.TotalCost),
		FormatMoneyFull(best.TotalTax()),
		FormatMoneyFull(best.TotalInterest()))
	fmt.Println()
}

// PrintScenarioComparison prints every candidate's aggregate cost, marking the winner
func PrintScenarioComparison(result OptimizationResult, config *Config) {
	plan := config.Funding

	fmt.Printf("All %d scenarios (year-1 sale fraction vs total cost):\n", len(result.Scenarios))
	fmt.Println()
	fmt.Println("  Year-1 Sale      Total Tax   Total Interest    Total Cost")
	fmt.Println("  ───────────     ──────────   ──────────────    ──────────")
	for _, s := range result.Scenarios {
		marker := "  "
		if s.FirstYearSale == result.Best.FirstYearSale {
			marker = "★ "
		}
		fmt.Printf("%s %-12s    %10s   %14s    %10s\n",
			marker,
			s.Label(plan.AssetValue),
			FormatMoneyFull(s.TotalTax()),
			FormatMoneyFull(s.TotalInterest()),
			FormatMoneyFull(s.TotalCost))
	}
	fmt.Println()
}

// PrintScenarioDetails prints the year-by-year breakdown of every candidate
// (the -details view).
func PrintScenarioDetails(result OptimizationResult, config *Config) {
	plan := config.Funding

	for _, s := range result.Scenarios {
		fmt.Printf("--- Scenario: %s ---\n", s.Label(plan.AssetValue))
		for _, y := range s.Years {
			fmt.Printf("    Year %d: sold %s, credit %s, tax %s, interest %s\n",
				y.Year,
				FormatMoneyFull(y.AssetSold),
				FormatMoneyFull(y.CreditUsed),
				FormatMoneyFull(y.TaxPaid),
				FormatMoneyFull(y.InterestPaid))
		}
		fmt.Printf("    Total: %s\n", FormatMoneyFull(s.TotalCost))
		fmt.Println()
	}
}
