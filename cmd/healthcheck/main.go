package main

import (
	"net/http"
	"os"
	"time"
)

// Container healthcheck: hit the version endpoint and exit non-zero
// when the server is unreachable or failing.
func main() {
	addr := os.Getenv("DUELDICE_HEALTHCHECK_URL")
	if addr == "" {
		addr = "http://127.0.0.1:8080/api/version"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(addr)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
