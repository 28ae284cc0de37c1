package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// WebServer holds the HTTP server configuration
type WebServer struct {
	config *Config
	addr   string
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, addr string) *WebServer {
	return &WebServer{
		config: config,
		addr:   addr,
	}
}

// APIOptimizeRequest represents a request to run the optimizer
type APIOptimizeRequest struct {
	Funding      FundingPlan  `json:"funding"`
	Jurisdiction Jurisdiction `json:"jurisdiction,omitempty"`
}

// APIOptimizeResponse represents the optimizer results
type APIOptimizeResponse struct {
	Success   bool                 `json:"success"`
	Error     string               `json:"error,omitempty"`
	Best      *APIScenarioSummary  `json:"best,omitempty"`
	Scenarios []APIScenarioSummary `json:"scenarios,omitempty"`
}

// APIScenarioSummary is a simplified scenario result for API responses
type APIScenarioSummary struct {
	FirstYearSale float64      `json:"first_year_sale"`
	Fraction      float64      `json:"fraction"`
	TotalTax      float64      `json:"total_tax"`
	TotalInterest float64      `json:"total_interest"`
	TotalCost     float64      `json:"total_cost"`
	Years         []YearRecord `json:"years,omitempty"`
}

// APISensitivityResponse returns the sensitivity grid data
type APISensitivityResponse struct {
	Success       bool                  `json:"success"`
	Error         string                `json:"error,omitempty"`
	InterestRates []float64             `json:"interest_rates"`
	YearCounts    []int                 `json:"year_counts"`
	Grid          [][]SensitivityResult `json:"grid"`
}

// Start starts the web server
func (ws *WebServer) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/optimize", ws.handleOptimize)
	mux.HandleFunc("/api/sensitivity", ws.handleSensitivity)
	mux.HandleFunc("/api/download-pdf", ws.handleDownloadPDF)

	// Listen on the address (use :0 for auto-assign)
	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return err
	}

	// Get the actual address (with assigned port)
	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)

	// If listening on all interfaces, use localhost for the URL
	if strings.HasPrefix(actualAddr, ":") || strings.HasPrefix(actualAddr, "0.0.0.0:") {
		port := actualAddr[strings.LastIndex(actualAddr, ":")+1:]
		url = fmt.Sprintf("http://localhost:%s", port)
	}

	log.Printf("Starting web server on %s", actualAddr)
	log.Printf("Opening %s in your browser...", url)

	go openBrowser(url)

	return http.Serve(listener, mux)
}

// handleIndex serves the optimization report for the configured plan
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	result, err := OptimizeFundingMix(ws.config.Funding, ws.config.GetJurisdiction())
	if err != nil {
		http.Error(w, "Optimization failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	writeOptimizationHTML(w, result, ws.config)
}

// handleGetConfig returns the current configuration
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if ws.config == nil {
		defaultConfig, err := LoadDefaultConfig()
		if err != nil {
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(defaultConfig)
		return
	}

	json.NewEncoder(w).Encode(ws.config)
}

// handleOptimize runs the optimizer for a posted funding plan
func (ws *WebServer) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIOptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	plan, jur := ws.buildPlan(&req)

	result, err := OptimizeFundingMix(plan, jur)
	if err != nil {
		sendJSONError(w, err.Error())
		return
	}

	response := APIOptimizeResponse{
		Success: true,
	}
	for _, s := range result.Scenarios {
		response.Scenarios = append(response.Scenarios, convertToAPISummary(s, plan.AssetValue, false))
	}
	best := convertToAPISummary(result.Best, plan.AssetValue, true)
	response.Best = &best

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleSensitivity runs the sensitivity grid for a posted funding plan
func (ws *WebServer) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIOptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(APISensitivityResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	plan, jur := ws.buildPlan(&req)

	config := &Config{
		Funding:      plan,
		Jurisdiction: jur,
	}
	if ws.config != nil {
		config.Sensitivity = ws.config.Sensitivity
	}

	analysis, err := RunSensitivityAnalysis(config)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(APISensitivityResponse{Success: false, Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APISensitivityResponse{
		Success:       true,
		InterestRates: analysis.InterestRates,
		YearCounts:    analysis.YearCounts,
		Grid:          analysis.Results,
	})
}

// handleDownloadPDF returns PDF content directly for browser download
func (ws *WebServer) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIOptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan, jur := ws.buildPlan(&req)

	result, err := OptimizeFundingMix(plan, jur)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdfConfig := &Config{Funding: plan, Jurisdiction: jur}
	pdfBytes, err := RenderPDFReport(result, pdfConfig)
	if err != nil {
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("funding-plan-%s.pdf", time.Now().Format("2006-01-02-150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.Write(pdfBytes)
}

// buildPlan fills a posted plan's missing fields from the server config
func (ws *WebServer) buildPlan(req *APIOptimizeRequest) (FundingPlan, Jurisdiction) {
	plan := req.Funding
	jur := req.Jurisdiction

	if ws.config != nil {
		if plan.TotalAmount == 0 {
			plan = ws.config.Funding
		}
		if len(jur.Federal) == 0 && len(jur.Provincial) == 0 {
			jur = ws.config.GetJurisdiction()
		}
	}
	if len(jur.Federal) == 0 && len(jur.Provincial) == 0 {
		jur = CanadaBC2024()
	}

	return plan, jur
}

func convertToAPISummary(s Scenario, assetValue float64, includeYears bool) APIScenarioSummary {
	fraction := 0.0
	if assetValue > 0 {
		fraction = s.FirstYearSale / assetValue
	}
	summary := APIScenarioSummary{
		FirstYearSale: s.FirstYearSale,
		Fraction:      fraction,
		TotalTax:      s.TotalTax(),
		TotalInterest: s.TotalInterest(),
		TotalCost:     s.TotalCost,
	}
	if includeYears {
		summary.Years = s.Years
	}
	return summary
}

func sendJSONError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIOptimizeResponse{Success: false, Error: msg})
}

// openBrowser opens the given URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default: // Linux and others
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Could not open browser: %v", err)
	}
}
