package loadtest

import (
	"time"
)

// Config holds the load test parameters.
type Config struct {
	BaseURL  string
	NumNames int
	Workers  int
	Timeout  time.Duration
	Verbose  bool
}

// Stats collects the outcome of a load test run.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Submitted  int64
	Successful int64
	Failed     int64

	// Latencies holds per-request round trip times in milliseconds.
	Latencies []float64
}
