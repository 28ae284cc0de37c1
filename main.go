package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Renovation Funding Tax Optimizer

Finds the cheapest way to fund a large multi-year expenditure from an
appreciated asset and a line of credit. Selling the asset early avoids
interest but realizes capital gains tax; leaning on the credit line defers
tax but accrues interest. The optimizer evaluates 11 candidate schedules
(year-1 sale from 0%% to 100%% of the asset in 10%% steps, remainder spread
evenly over the remaining years) and reports the one minimizing total
tax + interest.

Tax is computed with the stacked Canadian federal + BC provincial brackets
for 2024 and the 50%% capital gains inclusion rate. Other jurisdictions can
be configured in the YAML config file.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                           Optimize using config.yaml (prompts if missing)
  %s -config my.yaml           Use custom configuration file
  %s -details                  Year-by-year breakdown for every scenario
  %s -html                     Generate an interactive HTML report
  %s -pdf                      Generate a PDF funding plan
  %s -sensitivity              Sweep interest rates and funding horizons
  %s -web                      Web server mode (opens external browser)
  %s -web -addr :8080          Web server on specific port

Configuration:
  Edit config.yaml to set the expenditure, asset, credit line, and tax
  brackets. Percentages accept both 0.07 and 7%% forms.

  Key settings:
    funding.total_amount:   Expenditure to fund (CAD)
    funding.asset_value:    Market value of the appreciated asset
    funding.capital_gain:   Unrealized gain embedded in the asset
    funding.interest_rate:  Line of credit annual rate
    funding.years:          Funding horizon
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	showDetails := flag.Bool("details", false, "Show year-by-year breakdown for every scenario in console")
	generateHTML := flag.Bool("html", false, "Generate interactive HTML report")
	generatePDF := flag.Bool("pdf", false, "Generate PDF funding plan")
	runSensitivity := flag.Bool("sensitivity", false, "Run sensitivity analysis across interest rates and horizons")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	webAddr := flag.String("addr", "localhost:0", "Web server address (for -web mode, use :0 for auto port)")
	flag.Parse()

	// Web server mode (external browser)
	if *webMode {
		config := loadOrPromptConfig(*configFile)
		server := NewWebServer(config, *webAddr)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	config := loadOrPromptConfig(*configFile)
	jur := config.GetJurisdiction()

	if err := jur.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid jurisdiction config: %v\n", err)
		os.Exit(1)
	}

	PrintHeader(config)

	result, err := OptimizeFundingMix(config.Funding, jur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Optimization error: %v\n", err)
		os.Exit(1)
	}

	PrintOptimalSchedule(result, config)
	PrintScenarioComparison(result, config)

	if *showDetails {
		PrintScenarioDetails(result, config)
	}

	if *generateHTML {
		filename := "funding-report.html"
		if err := GenerateHTMLReport(result, config, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating HTML report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("HTML report written to %s\n", filename)
		openBrowser(filename)
	}

	if *generatePDF {
		filename := "funding-plan.pdf"
		if err := GeneratePDFReport(result, config, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("PDF funding plan written to %s\n", filename)
	}

	if *runSensitivity {
		analysis, err := RunSensitivityAnalysis(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Sensitivity error: %v\n", err)
			os.Exit(1)
		}
		PrintSensitivitySummary(analysis)

		filename := "sensitivity.html"
		if err := GenerateSensitivityReport(analysis, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating sensitivity report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sensitivity heatmap written to %s\n", filename)
	}
}

// loadOrPromptConfig loads the config file, prompting interactively for the
// funding parameters when the file is missing. The answers are saved back to
// the config file so the next run skips the prompts.
func loadOrPromptConfig(configFile string) *Config {
	config, err := LoadConfig(configFile)
	if err == nil {
		return config
	}
	if !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("No config file found at %s. Let's set one up.\n", configFile)
	fmt.Println("Press Enter to accept the [default] for any question.")
	fmt.Println()

	config, err = LoadDefaultConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading defaults: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	config.Funding.TotalAmount = promptMoneySimple(reader, "  Total expenditure to fund", config.Funding.TotalAmount)
	config.Funding.Years = promptIntSimple(reader, "  Funding horizon (years)", config.Funding.Years)
	config.Funding.AssetValue = promptMoneySimple(reader, "  Asset market value", config.Funding.AssetValue)
	config.Funding.CapitalGain = promptMoneySimple(reader, "  Unrealized capital gain", config.Funding.CapitalGain)
	config.Funding.InterestRate = promptPercentSimple(reader, "  Line of credit interest rate", config.Funding.InterestRate)
	fmt.Println()

	if err := SaveConfig(config, configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	} else {
		fmt.Printf("Saved configuration to %s\n\n", configFile)
	}

	return config
}

func promptIntSimple(reader *bufio.Reader, prompt string, defaultVal int) int {
	fmt.Printf("%s [%d]: ", prompt, defaultVal)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil {
		return defaultVal
	}
	return val
}

func promptPercentSimple(reader *bufio.Reader, prompt string, defaultVal float64) float64 {
	fmt.Printf("%s [%.0f%%]: ", prompt, defaultVal*100)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	// Handle % suffix
	if strings.HasSuffix(input, "%") {
		input = strings.TrimSuffix(input, "%")
		val, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return defaultVal
		}
		return val / 100
	}
	// Assume decimal if no %
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return defaultVal
	}
	// If value > 1, assume percentage
	if val > 1 {
		return val / 100
	}
	return val
}

func promptMoneySimple(reader *bufio.Reader, prompt string, defaultVal float64) float64 {
	defaultStr := fmt.Sprintf("C$%.0fk", defaultVal/1000)
	if defaultVal < 1000 {
		defaultStr = fmt.Sprintf("C$%.0f", defaultVal)
	}
	fmt.Printf("%s [%s]: ", prompt, defaultStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultVal
	}
	// Handle k/m suffix
	multiplier := 1.0
	if strings.HasSuffix(input, "k") {
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	} else if strings.HasSuffix(input, "m") {
		multiplier = 1000000
		input = strings.TrimSuffix(input, "m")
	}
	input = strings.TrimPrefix(input, "c$")
	input = strings.TrimPrefix(input, "$")
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return defaultVal
	}
	return val * multiplier
}
