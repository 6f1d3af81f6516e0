// Loadtest is a concurrent HTTP load generator for the calculate endpoint.
// It reports throughput, latency percentiles and the status code
// distribution.
//
// Usage:
//
//	go run ./scripts -url http://localhost:3000/api/calculate -concurrency 10 -requests 1000
//	go run ./scripts -concurrency 50 -requests 5000 -invalid 0.2 -out summary.json
//
// With -invalid > 0 a share of requests divide by zero or use an unknown
// operation, which should come back as 400s.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type summary struct {
	Requests    int64          `json:"requests"`
	Success     int64          `json:"success"`
	Failure     int64          `json:"failure"`
	Elapsed     string         `json:"elapsed"`
	RPS         float64        `json:"rps"`
	P50Ms       float64        `json:"p50_ms"`
	P90Ms       float64        `json:"p90_ms"`
	P95Ms       float64        `json:"p95_ms"`
	P99Ms       float64        `json:"p99_ms"`
	StatusCodes map[int]int64  `json:"status_codes"`
	Operations  map[string]int `json:"operations"`
}

var operations = []string{"add", "subtract", "multiply", "divide"}

func main() {
	var (
		url         = flag.String("url", "http://localhost:3000/api/calculate", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		invalid     = flag.Float64("invalid", 0, "Share of requests (0-1) that should be rejected")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
		outJSON     = flag.String("out", "", "Write JSON summary to this file (optional)")
		verbose     = flag.Bool("v", false, "Verbose per-request logging to stdout")
	)
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var success atomic.Int64
	var failure atomic.Int64

	var mu sync.Mutex
	latencies := make([]time.Duration, 0, *requests)
	statusCodes := make(map[int]int64)
	opCounts := make(map[string]int)

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				op, body := buildRequest(*invalid)

				start := time.Now()
				resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
				dur := time.Since(start)

				if err != nil {
					failure.Add(1)
					if *verbose {
						fmt.Printf("[%d] error: %v\n", idx, err)
					}
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode < 500 {
					success.Add(1)
				} else {
					failure.Add(1)
				}

				mu.Lock()
				latencies = append(latencies, dur)
				statusCodes[resp.StatusCode]++
				opCounts[op]++
				mu.Unlock()

				if *verbose {
					fmt.Printf("[%d] %s -> %d in %s\n", idx, op, resp.StatusCode, dur)
				}
			}
		}()
	}

	for i := 0; i < *requests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(testStart)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	s := summary{
		Requests:    int64(*requests),
		Success:     success.Load(),
		Failure:     failure.Load(),
		Elapsed:     elapsed.String(),
		RPS:         float64(*requests) / elapsed.Seconds(),
		P50Ms:       percentileMs(latencies, 0.50),
		P90Ms:       percentileMs(latencies, 0.90),
		P95Ms:       percentileMs(latencies, 0.95),
		P99Ms:       percentileMs(latencies, 0.99),
		StatusCodes: statusCodes,
		Operations:  opCounts,
	}

	fmt.Printf("Requests: %d  Success: %d  Failure: %d\n", s.Requests, s.Success, s.Failure)
	fmt.Printf("Elapsed: %s  RPS: %.1f\n", s.Elapsed, s.RPS)
	fmt.Printf("Latency ms  p50=%.2f p90=%.2f p95=%.2f p99=%.2f\n", s.P50Ms, s.P90Ms, s.P95Ms, s.P99Ms)
	for code, count := range s.StatusCodes {
		fmt.Printf("  %d: %d\n", code, count)
	}

	if *outJSON != "" {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode summary: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outJSON, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write summary: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildRequest returns the operation label and a JSON body. Invalid requests
// either divide by zero or ask for an unknown operation.
func buildRequest(invalidShare float64) (string, []byte) {
	a := float64(rand.IntN(1000))
	b := float64(rand.IntN(999) + 1)
	op := operations[rand.IntN(len(operations))]

	if rand.Float64() < invalidShare {
		if rand.IntN(2) == 0 {
			op, b = "divide", 0
		} else {
			op = "power"
		}
	}

	body, _ := json.Marshal(map[string]interface{}{"a": a, "b": b, "operation": op})
	return op, body
}

func percentileMs(sorted []time.Duration, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return float64(sorted[index]) / float64(time.Millisecond)
}
