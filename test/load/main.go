package main

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Read-only load generator for the listing endpoint. Requests are idempotent,
// so failures are simply counted and retried by the next tick.

type LoadTestConfig struct {
	BaseURL           string
	RequestsPerSecond int
	DurationSeconds   int
	ConcurrentWorkers int
}

type Stats struct {
	successCount  atomic.Int64
	errorCount    atomic.Int64
	responseTimes []float64
	mu            sync.Mutex
}

func (s *Stats) addResponseTime(duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseTimes = append(s.responseTimes, duration)
}

func (s *Stats) getResponseTimes() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	times := make([]float64, len(s.responseTimes))
	copy(times, s.responseTimes)
	return times
}

var (
	sorts   = []string{"date-desc", "date-asc", "quantity-desc", "name-asc"}
	ages    = []string{"All", "0-18", "19-35", "36-50", "50+"}
	dates   = []string{"All", "Last 7 Days", "Last Month", "Last 1 Year"}
	regions = []string{"", "North", "South", "North,South"}
)

func randomQuery(rng *rand.Rand) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(rng.Intn(5)+1))
	q.Set("limit", strconv.Itoa([]int{10, 25, 50}[rng.Intn(3)]))
	q.Set("sort", sorts[rng.Intn(len(sorts))])
	q.Set("age", ages[rng.Intn(len(ages))])
	q.Set("date", dates[rng.Intn(len(dates))])
	if r := regions[rng.Intn(len(regions))]; r != "" {
		q.Set("region", r)
	}
	return q.Encode()
}

func sendRequest(client *http.Client, config LoadTestConfig, rng *rand.Rand, stats *Stats) {
	start := time.Now()

	resp, err := client.Get(config.BaseURL + "/api/transactions?" + randomQuery(rng))
	if err != nil {
		stats.errorCount.Add(1)
		return
	}
	defer resp.Body.Close() //nolint
	_, _ = io.Copy(io.Discard, resp.Body)

	stats.addResponseTime(time.Since(start).Seconds() * 1000)
	if resp.StatusCode == http.StatusOK {
		stats.successCount.Add(1)
	} else {
		stats.errorCount.Add(1)
	}
}

func main() {
	config := LoadTestConfig{
		BaseURL:           getEnv("LOAD_BASE_URL", "http://localhost:8080"),
		RequestsPerSecond: getEnvInt("LOAD_RPS", 100),
		DurationSeconds:   getEnvInt("LOAD_DURATION", 30),
		ConcurrentWorkers: getEnvInt("LOAD_WORKERS", 10),
	}

	client := &http.Client{Timeout: 10 * time.Second}
	stats := &Stats{}

	jobs := make(chan struct{}, config.RequestsPerSecond)
	var wg sync.WaitGroup

	for i := 0; i < config.ConcurrentWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for range jobs {
				sendRequest(client, config, rng, stats)
			}
		}(int64(i) + time.Now().UnixNano())
	}

	ticker := time.NewTicker(time.Second / time.Duration(config.RequestsPerSecond))
	deadline := time.After(time.Duration(config.DurationSeconds) * time.Second)

loop:
	for {
		select {
		case <-ticker.C:
			jobs <- struct{}{}
		case <-deadline:
			break loop
		}
	}
	ticker.Stop()
	close(jobs)
	wg.Wait()

	printReport(config, stats)
}

func printReport(config LoadTestConfig, stats *Stats) {
	times := stats.getResponseTimes()
	sort.Float64s(times)

	fmt.Printf("requests: %d ok, %d failed\n", stats.successCount.Load(), stats.errorCount.Load())
	if len(times) == 0 {
		return
	}
	fmt.Printf("latency ms: p50=%.1f p95=%.1f p99=%.1f max=%.1f\n",
		percentile(times, 0.50),
		percentile(times, 0.95),
		percentile(times, 0.99),
		times[len(times)-1],
	)
	_ = config
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
