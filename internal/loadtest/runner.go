package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/moniker/pkg/logger"
)

// Run executes the complete suggestion load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting suggestion load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("names", config.NumNames),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate names
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // load test jitter only
	names := generateNames(config.NumNames, rng)

	// Step 3: Submit names concurrently
	if err := submitNames(ctx, config, names, stats); err != nil {
		return fmt.Errorf("name submission failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "load test completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service returned status %d", resp.StatusCode)
	}
	return nil
}

type suggestRequest struct {
	Name string `json:"name"`
}

// submitNames fires names at POST /suggest using a worker pool.
func submitNames(ctx context.Context, config *Config, names []string, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/suggest"

	var (
		successful int64
		failed     int64
	)

	latencies := make([]float64, len(names))
	nameChan := make(chan int, config.Workers*2)

	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range nameChan {
				start := time.Now()
				resp, err := client.Post(ctx, url, suggestRequest{Name: names[idx]})
				latencies[idx] = float64(time.Since(start).Milliseconds())
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "request failed",
							logger.String("name", names[idx]),
							logger.Error(err),
						)
					}
					continue
				}
				if resp.StatusCode == http.StatusOK {
					atomic.AddInt64(&successful, 1)
				} else {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "unexpected status",
							logger.String("name", names[idx]),
							logger.Int("status", resp.StatusCode),
						)
					}
				}
				drainAndClose(resp)
			}
		}()
	}

	for idx := range names {
		select {
		case nameChan <- idx:
		case <-ctx.Done():
			close(nameChan)
			wg.Wait()
			return fmt.Errorf("submission interrupted: %w", ctx.Err())
		}
	}
	close(nameChan)
	wg.Wait()

	stats.Submitted = int64(len(names))
	stats.Successful = successful
	stats.Failed = failed
	stats.Latencies = latencies
	return nil
}

// displayFinalStats logs latency percentiles and acceptance counts.
func displayFinalStats(ctx context.Context, stats *Stats) {
	sorted := append([]float64(nil), stats.Latencies...)
	sort.Float64s(sorted)

	logger.Get().Info(ctx, "load test results",
		logger.Int("submitted", int(stats.Submitted)),
		logger.Int("successful", int(stats.Successful)),
		logger.Int("failed", int(stats.Failed)),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("p50_ms", percentile(sorted, 0.50)),
		logger.Float64("p95_ms", percentile(sorted, 0.95)),
		logger.Float64("p99_ms", percentile(sorted, 0.99)),
	)
}

// percentile reads the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}
