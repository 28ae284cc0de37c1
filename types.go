package main

import "fmt"

// TaxBracket represents one marginal tax bracket. The bracket's rate applies
// to taxable income above Threshold and below the next bracket's Threshold.
// The last bracket in a table is open-ended.
type TaxBracket struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Rate      float64 `yaml:"rate" json:"rate"`
}

// Jurisdiction holds everything needed to compute capital gains tax in one
// place: the federal and provincial bracket tables and the fraction of a
// capital gain that is taxable. Passed explicitly wherever tax is computed,
// so a different jurisdiction is just a different value.
type Jurisdiction struct {
	Name          string       `yaml:"name" json:"name"`
	Federal       []TaxBracket `yaml:"federal_brackets" json:"federal_brackets"`
	Provincial    []TaxBracket `yaml:"provincial_brackets" json:"provincial_brackets"`
	InclusionRate float64      `yaml:"inclusion_rate" json:"inclusion_rate"`
}

// FundingPlan describes the funding problem: a large expenditure to cover
// over a number of years, a liquidatable asset carrying an unrealized gain,
// and a line of credit charging interest on whatever the asset sales have
// not yet covered.
type FundingPlan struct {
	TotalAmount  float64 `yaml:"total_amount" json:"total_amount"`   // Expenditure to fund
	AssetValue   float64 `yaml:"asset_value" json:"asset_value"`     // Market value of the liquidatable asset
	CapitalGain  float64 `yaml:"capital_gain" json:"capital_gain"`   // Unrealized gain embedded in the asset
	InterestRate float64 `yaml:"interest_rate" json:"interest_rate"` // Annual rate on the credit balance
	Years        int     `yaml:"years" json:"years"`                 // Horizon in years (>= 1)
}

// YearRecord holds the computed costs for one year of a liquidation schedule.
type YearRecord struct {
	Year         int     `json:"year"` // 1-based
	AssetSold    float64 `json:"asset_sold"`
	CreditUsed   float64 `json:"credit_used"` // Outstanding credit balance for the year
	TaxPaid      float64 `json:"tax_paid"`
	InterestPaid float64 `json:"interest_paid"`
	TotalCost    float64 `json:"total_cost"` // TaxPaid + InterestPaid
}

// Scenario is one candidate liquidation schedule: a year-1 sale amount with
// the remainder spread evenly over the rest of the horizon, evaluated into
// per-year records and an aggregate cost.
type Scenario struct {
	FirstYearSale float64      `json:"first_year_sale"`
	Years         []YearRecord `json:"years"`
	TotalCost     float64      `json:"total_cost"`
}

// Label returns a short description of the scenario's shape, e.g. "40% year 1".
func (s Scenario) Label(assetValue float64) string {
	if assetValue <= 0 {
		return "no asset"
	}
	return fmt.Sprintf("%.0f%% year 1", s.FirstYearSale/assetValue*100)
}

// TotalTax sums the tax paid across all years of the scenario.
func (s Scenario) TotalTax() float64 {
	total := 0.0
	for _, y := range s.Years {
		total += y.TaxPaid
	}
	return total
}

// TotalInterest sums the interest paid across all years of the scenario.
func (s Scenario) TotalInterest() float64 {
	total := 0.0
	for _, y := range s.Years {
		total += y.InterestPaid
	}
	return total
}

// OptimizationResult holds the lowest-cost scenario along with every
// candidate that was evaluated, so callers can show the full comparison.
type OptimizationResult struct {
	Best      Scenario   `json:"best"`
	Scenarios []Scenario `json:"scenarios"`
}

// Schedule returns the year-by-year records of the winning scenario.
func (r OptimizationResult) Schedule() []YearRecord {
	return r.Best.Years
}
