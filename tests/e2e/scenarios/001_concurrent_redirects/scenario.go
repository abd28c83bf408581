package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// ### Start - fixed configs (no change)
// These values define the deterministic request mix and must match expected results.
// DO NOT MODIFY: Changing these will break the test's expectations.
const (
	totalRedirects = 2000 // Total number of redirect requests to send
	distinctIPs    = 50   // Number of distinct documentation-range visitor IPs
)

var (
	destinations = []string{
		"https://example.com/landing-a",
		"https://example.com/landing-b",
		"https://example.com/landing-c",
		"https://example.com/landing-d",
	}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type summaryResponse struct {
	Success     bool    `json:"success"`
	TotalClicks int64   `json:"total_clicks"`
	TopURL      *string `json:"top_url"`
}

// main runs the e2e scenario: 001_concurrent_redirects
//
// This scenario replaces the destination list through the update API, then
// fires concurrent redirects and checks that every one of them was logged.
//
// What it tests:
//   - POST /api/update-urls with a bearer token
//   - GET / answering 302 with a Location taken from the active set
//   - Concurrent appends to the redirect event log without lost or torn lines
//   - GET /api/logs?format=summary counting every redirect
//
// Expected results:
//   - The update returns 200 with urls_count=4
//   - All redirects return 302 and only point at the four destinations
//   - total_clicks over period=1h equals the number of redirects sent
//
// Run it against a server started with ./configs/configs.yml. In async sink
// mode the summary may lag; waitForDrain allows for that.
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the link rotator
	token := "change_me_in_production" // Bearer token expected by the update API
	parallel := 32                     // Number of concurrent redirect requests
	logsDir := ".tmp/logs"             // Event log directory relative to project root
	wantCleanLogs := true              // If true, remove the event log before running
	waitForDrain := 2 * time.Second    // Time given to an async sink to flush

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	logsPath := filepath.Join(projectRoot, logsDir)

	if wantCleanLogs {
		fmt.Printf("Cleaning event log directory: %s\n", logsPath)
		if err := os.RemoveAll(logsPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean event log directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_concurrent_redirects")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_REDIRECTS: %d\n", totalRedirects)
	fmt.Printf("LOGS_PATH: %s\n", logsPath)
	fmt.Println()

	if err := updateURLs(baseURL, token); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: URL update failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Destination list updated")

	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	allowed := make(map[string]bool, len(destinations))
	for _, d := range destinations {
		allowed[d] = true
	}

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var redirected int64
	hits := make(map[string]int)

	for i := 0; i < totalRedirects; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(i int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			location, err := sendRedirect(client, baseURL, i)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errors = append(errors, fmt.Errorf("redirect %d: %w", i, err))
				return
			}
			if !allowed[location] {
				errors = append(errors, fmt.Errorf("redirect %d: unexpected location %q", i, location))
				return
			}
			hits[location]++
			atomic.AddInt64(&redirected, 1)
		}(i)
	}
	wg.Wait()

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	time.Sleep(waitForDrain)

	summary, err := fetchSummary(baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: summary failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Redirects answered with 302: %d\n", atomic.LoadInt64(&redirected))
	locations := make([]string, 0, len(hits))
	for l := range hits {
		locations = append(locations, l)
	}
	sort.Strings(locations)
	for _, l := range locations {
		fmt.Printf("  %s: %d\n", l, hits[l])
	}
	fmt.Printf("Logged clicks (1h): %d\n", summary.TotalClicks)

	if summary.TotalClicks != totalRedirects {
		fmt.Fprintf(os.Stderr, "ERROR: expected %d logged clicks, got %d\n", totalRedirects, summary.TotalClicks)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

func updateURLs(baseURL, token string) error {
	body, err := json.Marshal(map[string]any{"urls": destinations})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/update-urls", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, raw)
	}
	var result struct {
		URLsCount int `json:"urls_count"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if result.URLsCount != len(destinations) {
		return fmt.Errorf("expected urls_count=%d, got %d", len(destinations), result.URLsCount)
	}
	return nil
}

func sendRedirect(client *http.Client, baseURL string, i int) (string, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	// 198.51.100.0/24 is a documentation range
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i%distinctIPs+1))
	req.Header.Set("User-Agent", userAgents[i%len(userAgents)])

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}

func fetchSummary(baseURL string) (*summaryResponse, error) {
	resp, err := http.Get(baseURL + "/api/logs?format=summary&period=1h")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &summary, nil
}
