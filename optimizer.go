package main

import (
	"fmt"
	"math"
)

// ScenarioSteps is the number of grid steps used when varying the year-1
// sale. The grid samples 0, 1, …, ScenarioSteps tenths of the asset value,
// giving ScenarioSteps+1 candidate schedules.
//
// This is a deliberate design choice, not a placeholder for a fuller solver:
// the tax component of the cost surface is a step function of the bracket
// thresholds, so sampling a small family of "front-load vs spread-out"
// schedules stays cheap and explainable.
const ScenarioSteps = 10

// Validate checks a funding plan before any scenario is evaluated.
func (p FundingPlan) Validate() error {
	if p.Years < 1 {
		return fmt.Errorf("%w: got %d", ErrHorizonTooShort, p.Years)
	}
	if p.TotalAmount < 0 {
		return fmt.Errorf("total amount must not be negative, got %.2f", p.TotalAmount)
	}
	if p.AssetValue < 0 {
		return fmt.Errorf("asset value must not be negative, got %.2f", p.AssetValue)
	}
	if p.CapitalGain < 0 {
		return fmt.Errorf("%w: %.2f", ErrNegativeGain, p.CapitalGain)
	}
	if p.InterestRate < 0 {
		return fmt.Errorf("interest rate must not be negative, got %.4f", p.InterestRate)
	}
	return nil
}

// firstYearSales returns the year-1 sale amount of each candidate schedule,
// in ascending order. With a single-year horizon the asset has nowhere else
// to go, so the only candidate sells everything in year 1.
func firstYearSales(plan FundingPlan) []float64 {
	if plan.Years == 1 {
		return []float64{plan.AssetValue}
	}

	step := plan.AssetValue / ScenarioSteps
	sales := make([]float64, 0, ScenarioSteps+1)
	for i := 0; i <= ScenarioSteps; i++ {
		sales = append(sales, float64(i)*step)
	}
	return sales
}

// EvaluateScenario computes the full year-by-year cost of one candidate
// schedule: firstYearSale in year 1, the remainder spread evenly across the
// remaining years. The per-year state (cumulative sold, unsold remainder) is
// threaded through the loop explicitly, so the evaluation is a pure function
// of its inputs.
//
// Each year the sale happens first, the credit line covers whatever the
// sales have not, and interest accrues on that outstanding balance.
func EvaluateScenario(plan FundingPlan, jur Jurisdiction, firstYearSale float64) (Scenario, error) {
	scenario := Scenario{
		FirstYearSale: firstYearSale,
		Years:         make([]YearRecord, 0, plan.Years),
	}

	remaining := plan.AssetValue - firstYearSale
	perYear := 0.0
	if plan.Years > 1 {
		perYear = remaining / float64(plan.Years-1)
	}

	cumulativeSold := 0.0
	for year := 1; year <= plan.Years; year++ {
		var sold float64
		if year == 1 {
			sold = firstYearSale
		} else {
			// Cap at what is left so float drift never oversells
			sold = math.Min(perYear, remaining)
			remaining -= sold
		}

		// Proportional realized gain; defined as 0 for a zero-value asset
		yearGain := 0.0
		if plan.AssetValue > 0 {
			yearGain = (sold / plan.AssetValue) * plan.CapitalGain
		}

		taxPaid, err := CalculateCapitalGainsTax(yearGain, jur)
		if err != nil {
			return Scenario{}, err
		}

		cumulativeSold += sold
		creditUsed := math.Max(0, plan.TotalAmount-cumulativeSold)
		interestPaid := creditUsed * plan.InterestRate
		totalCost := taxPaid + interestPaid

		scenario.Years = append(scenario.Years, YearRecord{
			Year:         year,
			AssetSold:    sold,
			CreditUsed:   creditUsed,
			TaxPaid:      taxPaid,
			InterestPaid: interestPaid,
			TotalCost:    totalCost,
		})
		scenario.TotalCost += totalCost
	}

	return scenario, nil
}

// OptimizeFundingMix evaluates every candidate schedule and returns the one
// with the lowest aggregate cost (tax plus interest). Candidates are walked
// in ascending year-1 sale order and ties keep the first minimum, so the
// schedule that sells least up front wins a tie.
func OptimizeFundingMix(plan FundingPlan, jur Jurisdiction) (OptimizationResult, error) {
	if err := plan.Validate(); err != nil {
		return OptimizationResult{}, err
	}
	if err := jur.Validate(); err != nil {
		return OptimizationResult{}, fmt.Errorf("jurisdiction %q: %w", jur.Name, err)
	}

	var result OptimizationResult
	for _, firstYearSale := range firstYearSales(plan) {
		scenario, err := EvaluateScenario(plan, jur, firstYearSale)
		if err != nil {
			return OptimizationResult{}, err
		}
		result.Scenarios = append(result.Scenarios, scenario)

		if len(result.Scenarios) == 1 || scenario.TotalCost < result.Best.TotalCost {
			result.Best = scenario
		}
	}

	return result, nil
}
