package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

// Smoke test against a running server loaded with config/catalog.toml.
func main() {
	if v := os.Getenv("CLUTCH_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	steps := []struct {
		name     string
		method   string
		endpoint string
		payload  any
		status   int
	}{
		{"Health", "GET", "/healthz", nil, http.StatusOK},
		{"List species", "GET", "/species", nil, http.StatusOK},
		{"List genes", "GET", "/species/ball_python/genes", nil, http.StatusOK},
		{"Parse genotype", "POST", "/genotypes/parse", map[string]any{
			"species": "ball_python",
			"text":    "super pastel, 66% het clown",
		}, http.StatusOK},
		{"Pairing", "POST", "/pairings", map[string]any{
			"species":  "ball_python",
			"parent_a": map[string]any{"pastel": "expressed", "clown": "het"},
			"parent_b": map[string]any{"clown": map[string]any{"state": "het", "pos_het": 66}},
			"limit":    5,
		}, http.StatusOK},
		{"Batch pairing", "POST", "/pairings/batch", map[string]any{
			"pairings": []map[string]any{
				{"species": "ball_python", "parent_a": map[string]any{"pastel": "super"}},
				{"species": "ball_python", "parent_a": map[string]any{"clown": "expressed"}, "parent_b": map[string]any{"clown": "het"}},
			},
		}, http.StatusOK},
		{"Save animal", "POST", "/animals", map[string]any{
			"species": "ball_python",
			"name":    fmt.Sprintf("smoke-%d", time.Now().Unix()),
			"text":    "pastel het clown",
		}, http.StatusCreated},
		{"Metrics", "GET", "/metrics", nil, http.StatusOK},
	}

	for i, s := range steps {
		fmt.Printf("%d. %s...\n", i+1, s.name)
		if !sendRequest(s.method, s.endpoint, s.payload, s.status) {
			fmt.Printf("FAILED: %s\n", s.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", s.name)
	}
}

func sendRequest(method, endpoint string, payload any, want int) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	if len(respBody) > 300 {
		respBody = append(respBody[:300], "..."...)
	}
	fmt.Printf("Response: %s\n", string(respBody))
	return true
}
