package main

import (
	"errors"
	"math"
	"testing"
)

// Tax Calculation Validation Tests
//
// These tests validate capital gains tax calculations against the published
// 2024 Canadian federal and British Columbia bracket tables.
// Reference: https://www.canada.ca/en/revenue-agency/services/tax/individuals/frequently-asked-questions-individuals/canadian-income-tax-rates-individuals-current-previous-years.html
//
// Federal brackets for 2024:
// - 15%    on the first $53,359
// - 20.5%  on $53,359 to $106,717
// - 26%    on $106,717 to $165,430
// - 29%    on $165,430 to $235,675
// - 33%    above $235,675
//
// BC brackets for 2024:
// - 5.06%  on the first $45,654
// - 7.7%   on $45,654 to $91,310
// - 10.5%  on $91,310 to $104,835
// - 12.29% on $104,835 to $127,299
// - 14.7%  on $127,299 to $172,602
// - 16.8%  on $172,602 to $240,716
// - 20.5%  above $240,716
//
// Only 50% of a capital gain is taxable (the inclusion rate).

// tolerance for floating point comparisons (C$0.01)
const taxTolerance = 0.01

func assertMoneyEquals(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > taxTolerance {
		t.Errorf("%s: expected C$%.2f, got C$%.2f (diff: C$%.2f)",
			description, expected, actual, actual-expected)
	}
}

// =============================================================================
// Single-Table Bracket Walk Tests
// =============================================================================

func TestBracketTax_FederalTable(t *testing.T) {
	jur := CanadaBC2024()
	tests := []struct {
		amount      float64
		expectedTax float64
		calculation string
	}{
		{
			amount:      25000,
			expectedTax: 3750.00, // 25000 * 0.15, entirely in the first bracket
			calculation: "25000 × 0.15 = 3750",
		},
		{
			amount:      75000,
			expectedTax: 12440.26,
			// First: 53359 * 0.15 = 8003.85
			// Second: (75000 - 53359) * 0.205 = 4436.41
			calculation: "8003.85 + 4436.41 = 12440.26",
		},
		{
			amount:      150000,
			expectedTax: 30195.82,
			// First: 53359 * 0.15 = 8003.85
			// Second: 53358 * 0.205 = 10938.39
			// Third: (150000 - 106717) * 0.26 = 11253.58
			calculation: "8003.85 + 10938.39 + 11253.58 = 30195.82",
		},
	}

	for _, tc := range tests {
		tax := CalculateBracketTax(tc.amount, jur.Federal)
		assertMoneyEquals(t, tc.expectedTax, tax, tc.calculation)
	}
}

func TestBracketTax_ProvincialTable(t *testing.T) {
	jur := CanadaBC2024()
	tests := []struct {
		amount      float64
		expectedTax float64
		calculation string
	}{
		{
			amount:      25000,
			expectedTax: 1265.00, // 25000 * 0.0506
			calculation: "25000 × 0.0506 = 1265",
		},
		{
			amount:      75000,
			expectedTax: 4569.73,
			// First: 45654 * 0.0506 = 2310.09
			// Second: (75000 - 45654) * 0.077 = 2259.64
			calculation: "2310.09 + 2259.64 = 4569.73",
		},
		{
			amount:      150000,
			expectedTax: 13343.60,
			// Walks four BC brackets up to the 14.7% band
			calculation: "BC table on 150000 = 13343.60",
		},
	}

	for _, tc := range tests {
		tax := CalculateBracketTax(tc.amount, jur.Provincial)
		assertMoneyEquals(t, tc.expectedTax, tax, tc.calculation)
	}
}

func TestBracketTax_AboveTopThreshold(t *testing.T) {
	jur := CanadaBC2024()

	// 300000 taxable reaches the open-ended 33% federal bracket
	// 53359*0.15 + 53358*0.205 + 58713*0.26 + 70245*0.29 + 64325*0.33
	tax := CalculateBracketTax(300000, jur.Federal)
	assertMoneyEquals(t, 75805.92, tax, "300000 through all five federal brackets")
}

func TestBracketTax_ZeroAndNegative(t *testing.T) {
	jur := CanadaBC2024()

	if tax := CalculateBracketTax(0, jur.Federal); tax != 0 {
		t.Errorf("zero amount should owe exactly zero tax, got %.2f", tax)
	}
	if tax := CalculateBracketTax(-5000, jur.Federal); tax != 0 {
		t.Errorf("negative amount should owe zero tax, got %.2f", tax)
	}
}

func TestBracketTax_ExactBoundary(t *testing.T) {
	jur := CanadaBC2024()

	// An amount exactly at a threshold is taxed entirely in the lower brackets
	tax := CalculateBracketTax(53359, jur.Federal)
	assertMoneyEquals(t, 8003.85, tax, "amount exactly at the first federal threshold")
}

// =============================================================================
// Capital Gains Tax Tests
// =============================================================================

func TestCapitalGainsTax_Canonical(t *testing.T) {
	jur := CanadaBC2024()

	tests := []struct {
		gain        float64
		expectedTax float64
		calculation string
	}{
		{
			gain:        10000,
			expectedTax: 1003.00,
			// Taxable: 5000, Federal: 750, BC: 253
			calculation: "750 + 253 = 1003",
		},
		{
			gain:        50000,
			expectedTax: 5015.00,
			// Taxable: 25000, Federal: 3750, BC: 1265
			calculation: "3750 + 1265 = 5015",
		},
		{
			gain:        150000,
			expectedTax: 17009.99,
			// Taxable: 75000, Federal: 12440.26, BC: 4569.73
			calculation: "12440.26 + 4569.73 = 17009.99",
		},
		{
			gain:        300000,
			expectedTax: 43539.42,
			// Taxable: 150000, Federal: 30195.82, BC: 13343.60
			calculation: "30195.82 + 13343.60 = 43539.42",
		},
	}

	for _, tc := range tests {
		tax, err := CalculateCapitalGainsTax(tc.gain, jur)
		if err != nil {
			t.Fatalf("gain %.0f: unexpected error: %v", tc.gain, err)
		}
		assertMoneyEquals(t, tc.expectedTax, tax, tc.calculation)
	}
}

func TestCapitalGainsTax_ZeroGain(t *testing.T) {
	tax, err := CalculateCapitalGainsTax(0, CanadaBC2024())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tax != 0 {
		t.Errorf("zero gain must owe exactly 0.0 tax, got %v", tax)
	}
}

func TestCapitalGainsTax_NegativeGainRejected(t *testing.T) {
	_, err := CalculateCapitalGainsTax(-10000, CanadaBC2024())
	if err == nil {
		t.Fatal("negative gain should be rejected")
	}
	if !errors.Is(err, ErrNegativeGain) {
		t.Errorf("expected ErrNegativeGain, got %v", err)
	}
}

func TestCapitalGainsTax_Deterministic(t *testing.T) {
	jur := CanadaBC2024()
	first, err := CalculateCapitalGainsTax(123456.78, jur)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := CalculateCapitalGainsTax(123456.78, jur)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("identical inputs produced different tax: %v vs %v", first, again)
		}
	}
}

// =============================================================================
// Rate Helper Tests
// =============================================================================

func TestMarginalRate(t *testing.T) {
	jur := CanadaBC2024()

	tests := []struct {
		amount   float64
		expected float64
	}{
		{30000, 0.15},   // first federal bracket
		{75000, 0.205},  // second federal bracket
		{120000, 0.26},  // third federal bracket
		{250000, 0.33},  // open-ended top bracket
	}
	for _, tc := range tests {
		if rate := MarginalRate(tc.amount, jur.Federal); rate != tc.expected {
			t.Errorf("MarginalRate(%.0f): expected %.3f, got %.3f", tc.amount, tc.expected, rate)
		}
	}
}

func TestCombinedMarginalRate(t *testing.T) {
	jur := CanadaBC2024()

	// 30000 taxable: 15% federal + 5.06% BC
	if rate := CombinedMarginalRate(30000, jur); math.Abs(rate-0.2006) > 1e-9 {
		t.Errorf("expected combined 0.2006, got %.4f", rate)
	}
	// 250000 taxable: 33% federal + 20.5% BC
	if rate := CombinedMarginalRate(250000, jur); math.Abs(rate-0.535) > 1e-9 {
		t.Errorf("expected combined 0.535, got %.4f", rate)
	}
}

func TestEffectiveTaxRate(t *testing.T) {
	jur := CanadaBC2024()

	// 50000 gain owes 5015, so 10.03% of the gross gain
	rate := EffectiveTaxRate(50000, jur)
	if math.Abs(rate-0.1003) > 1e-6 {
		t.Errorf("expected effective rate 0.1003, got %.6f", rate)
	}

	if rate := EffectiveTaxRate(0, jur); rate != 0 {
		t.Errorf("zero gain should have zero effective rate, got %.6f", rate)
	}
}

// =============================================================================
// Bracket Inflation Tests
// =============================================================================

func TestInflateBrackets(t *testing.T) {
	jur := CanadaBC2024()

	inflated := InflateBrackets(jur.Federal, 2024, 2026, 0.02)

	// Two years at 2%: threshold * 1.02^2
	expected := 53359 * 1.02 * 1.02
	assertMoneyEquals(t, expected, inflated[1].Threshold, "second threshold after 2 years at 2%")

	// Rates never change
	for i := range inflated {
		if inflated[i].Rate != jur.Federal[i].Rate {
			t.Errorf("bracket %d rate changed from %.3f to %.3f", i, jur.Federal[i].Rate, inflated[i].Rate)
		}
	}

	// Original table is untouched
	if jur.Federal[1].Threshold != 53359 {
		t.Errorf("source table was mutated: %.2f", jur.Federal[1].Threshold)
	}
}

func TestInflateBrackets_NoOp(t *testing.T) {
	jur := CanadaBC2024()

	same := InflateBrackets(jur.Federal, 2024, 2024, 0.02)
	if same[1].Threshold != jur.Federal[1].Threshold {
		t.Error("same-year inflation should leave thresholds unchanged")
	}

	same = InflateBrackets(jur.Federal, 2024, 2030, 0)
	if same[1].Threshold != jur.Federal[1].Threshold {
		t.Error("zero-rate inflation should leave thresholds unchanged")
	}
}

// =============================================================================
// Jurisdiction Validation Tests
// =============================================================================

func TestJurisdictionValidate(t *testing.T) {
	if err := CanadaBC2024().Validate(); err != nil {
		t.Fatalf("built-in jurisdiction should validate: %v", err)
	}

	bad := CanadaBC2024()
	bad.Federal = nil
	if err := bad.Validate(); err == nil {
		t.Error("empty federal table should be rejected")
	}

	bad = CanadaBC2024()
	bad.Federal[0].Threshold = 100
	if err := bad.Validate(); err == nil {
		t.Error("first threshold not at 0 should be rejected")
	}

	bad = CanadaBC2024()
	bad.Provincial[2].Threshold = bad.Provincial[1].Threshold
	if err := bad.Validate(); err == nil {
		t.Error("non-increasing thresholds should be rejected")
	}

	bad = CanadaBC2024()
	bad.InclusionRate = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("inclusion rate above 1 should be rejected")
	}

	bad = CanadaBC2024()
	bad.InclusionRate = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero inclusion rate should be rejected")
	}
}
