package main

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported at the calculator boundary. Invalid input fails before any
// bracket walk runs; there is no partial result.
var (
	ErrNegativeGain    = errors.New("capital gain must not be negative")
	ErrHorizonTooShort = errors.New("funding horizon must be at least 1 year")
)

// CanadaBC2024 returns the wired-in default jurisdiction: 2024 federal rates
// stacked with British Columbia provincial rates, 50% inclusion.
// Reference: https://www.canada.ca/en/revenue-agency/services/tax/individuals/frequently-asked-questions-individuals/canadian-income-tax-rates-individuals-current-previous-years.html
func CanadaBC2024() Jurisdiction {
	return Jurisdiction{
		Name: "Canada / British Columbia (2024)",
		Federal: []TaxBracket{
			{Threshold: 0, Rate: 0.15},
			{Threshold: 53359, Rate: 0.205},
			{Threshold: 106717, Rate: 0.26},
			{Threshold: 165430, Rate: 0.29},
			{Threshold: 235675, Rate: 0.33},
		},
		Provincial: []TaxBracket{
			{Threshold: 0, Rate: 0.0506},
			{Threshold: 45654, Rate: 0.077},
			{Threshold: 91310, Rate: 0.105},
			{Threshold: 104835, Rate: 0.1229},
			{Threshold: 127299, Rate: 0.147},
			{Threshold: 172602, Rate: 0.168},
			{Threshold: 240716, Rate: 0.205},
		},
		InclusionRate: 0.5,
	}
}

// Validate checks the structural invariants of a jurisdiction: both tables
// non-empty, thresholds strictly increasing starting at 0, and an inclusion
// rate in (0, 1].
func (j Jurisdiction) Validate() error {
	if err := validateBrackets(j.Federal); err != nil {
		return fmt.Errorf("federal brackets: %w", err)
	}
	if err := validateBrackets(j.Provincial); err != nil {
		return fmt.Errorf("provincial brackets: %w", err)
	}
	if j.InclusionRate <= 0 || j.InclusionRate > 1 {
		return fmt.Errorf("inclusion rate must be in (0, 1], got %.4f", j.InclusionRate)
	}
	return nil
}

func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return errors.New("table is empty")
	}
	if brackets[0].Threshold != 0 {
		return fmt.Errorf("first threshold must be 0, got %.2f", brackets[0].Threshold)
	}
	for i := 1; i < len(brackets); i++ {
		if brackets[i].Threshold <= brackets[i-1].Threshold {
			return fmt.Errorf("thresholds must be strictly increasing (bracket %d: %.2f <= %.2f)",
				i, brackets[i].Threshold, brackets[i-1].Threshold)
		}
	}
	for i, b := range brackets {
		if b.Rate < 0 {
			return fmt.Errorf("bracket %d has negative rate %.4f", i, b.Rate)
		}
	}
	return nil
}

// CalculateBracketTax walks one bracket table in ascending threshold order,
// taxing the portion of the amount that falls within each bracket's span at
// that bracket's marginal rate. Whatever lies above the last threshold is
// taxed at the final rate.
func CalculateBracketTax(amount float64, brackets []TaxBracket) float64 {
	if amount <= 0 {
		return 0
	}

	var tax float64
	remaining := amount

	for i := 0; i < len(brackets)-1; i++ {
		span := brackets[i+1].Threshold - brackets[i].Threshold
		if remaining > span {
			tax += span * brackets[i].Rate
			remaining -= span
		} else {
			tax += remaining * brackets[i].Rate
			return tax
		}
	}

	// Remainder above the last finite threshold
	return tax + remaining*brackets[len(brackets)-1].Rate
}

// CalculateCapitalGainsTax computes the total tax owed on realizing a capital
// gain in the given jurisdiction. Only the jurisdiction's inclusion fraction
// of the gain is taxable; the same taxable base runs through the federal and
// provincial tables independently and the liabilities are summed.
//
// A negative gain is rejected before any bracket walk. The function is pure:
// identical inputs always produce identical output.
func CalculateCapitalGainsTax(gain float64, jur Jurisdiction) (float64, error) {
	if gain < 0 {
		return 0, fmt.Errorf("%w: %.2f", ErrNegativeGain, gain)
	}
	if gain == 0 {
		return 0, nil
	}

	taxableGain := gain * jur.InclusionRate
	federal := CalculateBracketTax(taxableGain, jur.Federal)
	provincial := CalculateBracketTax(taxableGain, jur.Provincial)

	return federal + provincial, nil
}

// MarginalRate returns the marginal rate of one bracket table at a given
// taxable amount.
func MarginalRate(amount float64, brackets []TaxBracket) float64 {
	if len(brackets) == 0 {
		return 0
	}
	rate := brackets[0].Rate
	for _, b := range brackets {
		if amount < b.Threshold {
			break
		}
		rate = b.Rate
	}
	return rate
}

// CombinedMarginalRate returns the combined federal + provincial marginal
// rate a taxable base is exposed to in the jurisdiction.
func CombinedMarginalRate(taxableAmount float64, jur Jurisdiction) float64 {
	return MarginalRate(taxableAmount, jur.Federal) + MarginalRate(taxableAmount, jur.Provincial)
}

// EffectiveTaxRate returns total tax as a fraction of the gross gain
// (0 for a non-positive gain). Used by the reports.
func EffectiveTaxRate(gain float64, jur Jurisdiction) float64 {
	if gain <= 0 {
		return 0
	}
	tax, err := CalculateCapitalGainsTax(gain, jur)
	if err != nil {
		return 0
	}
	return tax / gain
}

// InflateBrackets returns a bracket table with thresholds indexed from a
// start year to a later year at a compound annual rate. Rates are unchanged.
// Canadian brackets are indexed annually; multi-year schedules realizing
// gains in later years can use this to assume continued indexation.
func InflateBrackets(brackets []TaxBracket, startYear, currentYear int, rate float64) []TaxBracket {
	if rate == 0 || currentYear <= startYear {
		return brackets
	}

	multiplier := math.Pow(1+rate, float64(currentYear-startYear))
	inflated := make([]TaxBracket, len(brackets))
	for i, b := range brackets {
		inflated[i] = TaxBracket{
			Threshold: b.Threshold * multiplier,
			Rate:      b.Rate,
		}
	}
	return inflated
}
