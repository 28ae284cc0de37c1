package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFReport generates a PDF funding plan for an optimization result
type PDFReport struct {
	pdf    *fpdf.Fpdf
	config *Config
	result OptimizationResult
}

// GeneratePDFReport creates the PDF and writes it to filename
func GeneratePDFReport(result OptimizationResult, config *Config, filename string) error {
	data, err := RenderPDFReport(result, config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// RenderPDFReport creates the PDF document and returns its bytes
func RenderPDFReport(result OptimizationResult, config *Config) ([]byte, error) {
	report := &PDFReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		config: config,
		result: result,
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.addTitlePage()
	report.addSchedulePage()
	report.addComparisonPage()

	var buf bytes.Buffer
	err := report.pdf.Output(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (r *PDFReport) addTitlePage() {
	r.pdf.AddPage()

	plan := r.config.Funding
	jur := r.config.GetJurisdiction()

	// Title
	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(50)
	r.pdf.CellFormat(contentWidth, 15, "Renovation Funding Plan", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(10)
	r.pdf.CellFormat(contentWidth, 10,
		fmt.Sprintf("%s over %d years", FormatMoney(plan.TotalAmount), plan.Years),
		"", 1, "C", false, 0, "")

	// Generation date
	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(15)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	// Plan parameters box
	r.pdf.Ln(20)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Plan Parameters", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	rows := []string{
		fmt.Sprintf("Total Expenditure: %s over %d years", FormatMoneyFull(plan.TotalAmount), plan.Years),
		fmt.Sprintf("Asset: %s with %s unrealized capital gain", FormatMoneyFull(plan.AssetValue), FormatMoneyFull(plan.CapitalGain)),
		fmt.Sprintf("Line of Credit: %.2f%% annual interest", plan.InterestRate*100),
		fmt.Sprintf("Jurisdiction: %s (%.0f%% capital gains inclusion)", jur.Name, jur.InclusionRate*100),
	}
	for i, row := range rows {
		border := "LR"
		if i == len(rows)-1 {
			border = "LRB"
		}
		r.pdf.CellFormat(contentWidth, 7, row, border, 1, "C", true, 0, "")
	}

	// Result box
	best := r.result.Best
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Recommendation", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 7,
		fmt.Sprintf("Sell %s in year 1 (%s of the asset)", FormatMoneyFull(best.FirstYearSale), best.Label(plan.AssetValue)),
		"LR", 1, "C", true, 0, "")
	r.pdf.CellFormat(contentWidth, 7,
		fmt.Sprintf("Total cost: %s (tax %s, interest %s)",
			FormatMoneyFull(best.TotalCost), FormatMoneyFull(best.TotalTax()), FormatMoneyFull(best.TotalInterest())),
		"LRB", 1, "C", true, 0, "")

	// Disclaimer
	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"This document is for informational purposes only and does not constitute financial or tax advice. "+
			"Please consult a qualified advisor before making any financial decisions. "+
			"Tax brackets and rates are subject to change.", "", "C", false)
}

func (r *PDFReport) addSchedulePage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Optimal Funding Schedule")

	best := r.result.Best

	widths := []float64{20, 32, 32, 32, 32, 32}
	r.drawTableHeader([]string{"Year", "Asset Sold", "Credit Used", "Tax Paid", "Interest", "Year Cost"}, widths)

	for _, y := range best.Years {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", y.Year),
			FormatMoneyFull(y.AssetSold),
			FormatMoneyFull(y.CreditUsed),
			FormatMoneyFull(y.TaxPaid),
			FormatMoneyFull(y.InterestPaid),
			FormatMoneyFull(y.TotalCost),
		}, widths, false)
	}
	r.drawTableRow([]string{
		"Total",
		FormatMoneyFull(r.config.Funding.AssetValue),
		"",
		FormatMoneyFull(best.TotalTax()),
		FormatMoneyFull(best.TotalInterest()),
		FormatMoneyFull(best.TotalCost),
	}, widths, true)

	r.pdf.Ln(8)
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(contentWidth, 5,
		"Each year's cost is the capital gains tax on that year's asset sale plus the interest "+
			"charged on the expenditure still carried by the line of credit. Credit use falls as "+
			"cumulative sale proceeds replace borrowed funds.", "", "L", false)
}

func (r *PDFReport) addComparisonPage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Scenario Comparison")

	plan := r.config.Funding

	widths := []float64{45, 45, 45, 45}
	r.drawTableHeader([]string{"Year-1 Sale", "Total Tax", "Total Interest", "Total Cost"}, widths)

	for _, s := range r.result.Scenarios {
		isBest := s.FirstYearSale == r.result.Best.FirstYearSale
		r.drawTableRow([]string{
			s.Label(plan.AssetValue),
			FormatMoneyFull(s.TotalTax()),
			FormatMoneyFull(s.TotalInterest()),
			FormatMoneyFull(s.TotalCost),
		}, widths, isBest)
	}
}

func (r *PDFReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
