package sim

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks latency distribution with percentile support
type Histogram struct {
	samples []float64 // Latencies in microseconds
	mu      sync.RWMutex
	maxSize int  // Maximum samples to retain
	sorted  bool // Track if samples are sorted
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000 // Default: keep last 10k samples
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
		sorted:  true,
	}
}

// Record adds a latency sample (in microseconds)
func (h *Histogram) Record(latencyUs float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// If at capacity, remove oldest sample (FIFO)
	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, latencyUs)
	h.sorted = false // Adding new sample invalidates sort order
}

// Percentile returns the latency at the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	if !h.sorted {
		h.mu.RUnlock()
		h.mu.Lock()
		if !h.sorted { // Double-check after acquiring write lock
			sort.Float64s(h.samples)
			h.sorted = true
		}
		h.mu.Unlock()
		h.mu.RLock()
	}

	// Calculate index
	rank := (p / 100.0) * float64(len(h.samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return h.samples[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return h.samples[lower]*(1-weight) + h.samples[upper]*weight
}

// Mean calculates the average latency
func (h *Histogram) Mean() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
	h.sorted = true
}

// HistogramSnapshot holds current percentile statistics
type HistogramSnapshot struct {
	Count int
	Mean  float64
	P50   float64 // Median
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}
}

// policyCounters tracks per-policy simulation counters
type policyCounters struct {
	runs     atomic.Uint64
	requests atomic.Uint64
	faults   atomic.Uint64
}

// Metrics tracks simulator performance metrics
type Metrics struct {
	fifo policyCounters
	lru  policyCounters
	opt  policyCounters

	// Latency Histograms (microseconds)
	fifoLatency *Histogram
	lruLatency  *Histogram
	optLatency  *Histogram

	// Timing Metrics
	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:   time.Now(),
		fifoLatency: NewHistogram(10000),
		lruLatency:  NewHistogram(10000),
		optLatency:  NewHistogram(10000),
	}
}

func (m *Metrics) counters(policy string) *policyCounters {
	switch policy {
	case PolicyFIFO:
		return &m.fifo
	case PolicyLRU:
		return &m.lru
	case PolicyOPT:
		return &m.opt
	}
	return nil
}

func (m *Metrics) histogram(policy string) *Histogram {
	switch policy {
	case PolicyFIFO:
		return m.fifoLatency
	case PolicyLRU:
		return m.lruLatency
	case PolicyOPT:
		return m.optLatency
	}
	return nil
}

// RecordRun records one completed policy evaluation
func (m *Metrics) RecordRun(policy string, requests, faults int, duration time.Duration) {
	c := m.counters(policy)
	if c == nil {
		return
	}
	c.runs.Add(1)
	c.requests.Add(uint64(requests))
	c.faults.Add(uint64(faults))
	m.histogram(policy).Record(float64(duration.Microseconds()))
}

// Getters

func (m *Metrics) GetRuns(policy string) uint64 {
	if c := m.counters(policy); c != nil {
		return c.runs.Load()
	}
	return 0
}

func (m *Metrics) GetRequests(policy string) uint64 {
	if c := m.counters(policy); c != nil {
		return c.requests.Load()
	}
	return 0
}

func (m *Metrics) GetFaults(policy string) uint64 {
	if c := m.counters(policy); c != nil {
		return c.faults.Load()
	}
	return 0
}

// GetHitRate returns the fraction of requests served without a fault
func (m *Metrics) GetHitRate(policy string) float64 {
	c := m.counters(policy)
	if c == nil {
		return 0.0
	}
	requests := c.requests.Load()
	if requests == 0 {
		return 0.0
	}
	faults := c.faults.Load()
	return float64(requests-faults) / float64(requests)
}

// GetComputeLatency returns snapshot of compute latency distribution
func (m *Metrics) GetComputeLatency(policy string) HistogramSnapshot {
	if h := m.histogram(policy); h != nil {
		return h.Snapshot()
	}
	return HistogramSnapshot{}
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	groups := make([]any, 0, 3)
	for _, policy := range []string{PolicyFIFO, PolicyLRU, PolicyOPT} {
		latency := m.GetComputeLatency(policy)
		groups = append(groups, slog.Group(policy,
			slog.Uint64("runs", m.GetRuns(policy)),
			slog.Uint64("requests", m.GetRequests(policy)),
			slog.Uint64("faults", m.GetFaults(policy)),
			slog.Float64("hit_rate", m.GetHitRate(policy)),
			slog.Group("latency_us",
				slog.Int("count", latency.Count),
				slog.Float64("mean", latency.Mean),
				slog.Float64("p50", latency.P50),
				slog.Float64("p95", latency.P95),
				slog.Float64("p99", latency.P99),
			),
		))
	}

	args := append(groups, slog.Duration("uptime", m.GetUptime()))
	logger.Info("Simulator Metrics", args...)
}
