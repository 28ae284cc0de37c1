package main

import (
	"fmt"
	"io"
	"os"
	"time"
)

// GenerateHTMLReport generates an HTML detailed report for an optimization result
func GenerateHTMLReport(result OptimizationResult, config *Config, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	writeOptimizationHTML(f, result, config)
	return nil
}

// writeOptimizationHTML writes the full report to w. The web server reuses
// this for its "/" page.
func writeOptimizationHTML(w io.Writer, result OptimizationResult, config *Config) {
	plan := config.Funding
	jur := config.GetJurisdiction()
	best := result.Best

	// Write HTML header
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Renovation Funding Optimisation</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        h1 {
            font-size: 1.75rem;
            margin-bottom: 0.5rem;
            color: var(--primary);
        }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle {
            color: var(--text-muted);
            margin-bottom: 1.5rem;
        }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid { display: grid; gap: 1rem; }
        .grid-4 { grid-template-columns: repeat(4, 1fr); }
        @media (max-width: 768px) {
            .grid-4 { grid-template-columns: 1fr; }
        }
        .metric {
            text-align: center;
            padding: 1rem;
            border-radius: 8px;
            background: var(--bg);
        }
        .metric-value {
            font-size: 1.5rem;
            font-weight: 700;
            color: var(--primary);
        }
        .metric-label {
            font-size: 0.875rem;
            color: var(--text-muted);
        }
        .metric.success .metric-value { color: var(--success); }
        table {
            width: 100%%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }
        th, td {
            padding: 0.75rem 0.5rem;
            text-align: right;
            border-bottom: 1px solid var(--border);
        }
        th {
            background: var(--bg);
            font-weight: 600;
            position: sticky;
            top: 0;
        }
        th:first-child, td:first-child { text-align: left; }
        tr:hover { background: #f1f5f9; }
        .negative { color: var(--danger); }
        .best { background: #dcfce7 !important; }
        .balance-row {
            background: var(--bg);
            font-weight: 600;
        }
        .footer {
            text-align: center;
            color: var(--text-muted);
            font-size: 0.75rem;
            margin-top: 2rem;
            padding-top: 1rem;
            border-top: 1px solid var(--border);
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Renovation Funding Tax Optimisation</h1>
        <p class="subtitle">%s over %d years, funded by asset sales and a %.2f%% line of credit</p>
`, FormatMoney(plan.TotalAmount), plan.Years, plan.InterestRate*100)

	// Summary metrics
	fmt.Fprintf(w, `
        <div class="card">
            <h2>Summary</h2>
            <div class="grid grid-4">
                <div class="metric success">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">Optimal Year-1 Sale</div>
                </div>
                <div class="metric">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">Total Cost</div>
                </div>
                <div class="metric">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">Total Tax</div>
                </div>
                <div class="metric">
                    <div class="metric-value">%s</div>
                    <div class="metric-label">Total Interest</div>
                </div>
            </div>
        </div>
`, best.Label(plan.AssetValue), FormatMoney(best.TotalCost),
		FormatMoney(best.TotalTax()), FormatMoney(best.TotalInterest()))

	// Configuration summary
	fmt.Fprintf(w, `
        <div class="card">
            <h2>Configuration</h2>
            <table>
                <tr><td>Total Expenditure</td><td>%s</td></tr>
                <tr><td>Funding Horizon</td><td>%d years</td></tr>
                <tr><td>Asset Value</td><td>%s</td></tr>
                <tr><td>Unrealized Capital Gain</td><td>%s</td></tr>
                <tr><td>Credit Line Interest Rate</td><td>%.2f%%</td></tr>
                <tr><td>Jurisdiction</td><td>%s</td></tr>
                <tr><td>Capital Gains Inclusion Rate</td><td>%.0f%%</td></tr>
            </table>
        </div>
`, FormatMoney(plan.TotalAmount), plan.Years, FormatMoney(plan.AssetValue),
		FormatMoney(plan.CapitalGain), plan.InterestRate*100, jur.Name, jur.InclusionRate*100)

	// Optimal schedule
	fmt.Fprintf(w, `
        <div class="card">
            <h2>Optimal Funding Schedule</h2>
            <table>
                <tr><th>Year</th><th>Asset Sold</th><th>Credit Used</th><th>Tax Paid</th><th>Interest Paid</th><th>Year Cost</th></tr>
`)
	for _, y := range best.Years {
		fmt.Fprintf(w, "                <tr><td>%d</td><td>%s</td><td>%s</td><td class=\"negative\">%s</td><td class=\"negative\">%s</td><td>%s</td></tr>\n",
			y.Year, FormatMoney(y.AssetSold), FormatMoney(y.CreditUsed),
			FormatMoney(y.TaxPaid), FormatMoney(y.InterestPaid), FormatMoney(y.TotalCost))
	}
	fmt.Fprintf(w, "                <tr class=\"balance-row\"><td><strong>Total</strong></td><td>%s</td><td></td><td>%s</td><td>%s</td><td><strong>%s</strong></td></tr>\n",
		FormatMoney(plan.AssetValue), FormatMoney(best.TotalTax()),
		FormatMoney(best.TotalInterest()), FormatMoney(best.TotalCost))
	fmt.Fprintf(w, `            </table>
        </div>
`)

	// Scenario comparison
	fmt.Fprintf(w, `
        <div class="card">
            <h2>Scenario Comparison</h2>
            <table>
                <tr><th>Year-1 Sale</th><th>Total Tax</th><th>Total Interest</th><th>Total Cost</th></tr>
`)
	for _, s := range result.Scenarios {
		class := ""
		if s.FirstYearSale == best.FirstYearSale {
			class = " class=\"best\""
		}
		fmt.Fprintf(w, "                <tr%s><td>%s</td><td>%s</td><td>%s</td><td><strong>%s</strong></td></tr>\n",
			class, s.Label(plan.AssetValue), FormatMoney(s.TotalTax()),
			FormatMoney(s.TotalInterest()), FormatMoney(s.TotalCost))
	}
	fmt.Fprintf(w, `            </table>
        </div>
`)

	// Footer
	fmt.Fprintf(w, `
        <div class="footer">
            Generated on %s | Renovation Funding Tax Optimisation
        </div>
    </div>
</body>
</html>
`, time.Now().Format("2006-01-02 15:04:05"))
}
