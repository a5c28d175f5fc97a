package sim

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Simulator ties a configuration, metrics tracker and logger around
// the policy engine. The engine itself is pure; the simulator adds
// trace loading, latency/fault accounting and structured logging.
type Simulator struct {
	config  *Config
	metrics *Metrics
	logger  *slog.Logger
}

// Comparison holds the fault counts of all three policies over one
// reference string
type Comparison struct {
	FIFO int
	LRU  int
	OPT  int
}

// NewSimulator creates a simulator from a validated configuration
func NewSimulator(config *Config) (*Simulator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(config.LogLevel),
	}))

	return &Simulator{
		config:  config,
		metrics: NewMetrics(),
		logger:  logger,
	}, nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Metrics returns the simulator's metrics tracker
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Logger returns the simulator's logger
func (s *Simulator) Logger() *slog.Logger {
	return s.logger
}

// Run evaluates the configured policy over the reference string and
// returns its fault count
func (s *Simulator) Run(ref []int) (int, error) {
	policy, err := NewPolicy(s.config.Policy, s.config.NumPages, s.config.NumFrames)
	if err != nil {
		return 0, err
	}
	return s.runPolicy(policy, ref), nil
}

// RunAll evaluates FIFO, LRU and OPT over the same reference string,
// one goroutine per policy. Each evaluation owns its resident set
// exclusively, so no synchronization beyond the join is needed.
func (s *Simulator) RunAll(ref []int) (Comparison, error) {
	fifo, err := NewFIFOPolicy(s.config.NumPages, s.config.NumFrames)
	if err != nil {
		return Comparison{}, err
	}
	lru, err := NewLRUPolicy(s.config.NumPages, s.config.NumFrames)
	if err != nil {
		return Comparison{}, err
	}
	opt, err := NewOPTPolicy(s.config.NumPages, s.config.NumFrames)
	if err != nil {
		return Comparison{}, err
	}

	var result Comparison
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.FIFO = s.runPolicy(fifo, ref)
	}()
	go func() {
		defer wg.Done()
		result.LRU = s.runPolicy(lru, ref)
	}()
	go func() {
		defer wg.Done()
		result.OPT = s.runPolicy(opt, ref)
	}()

	wg.Wait()
	return result, nil
}

func (s *Simulator) runPolicy(policy Policy, ref []int) int {
	start := time.Now()
	faults := policy.ComputeFaults(ref)
	elapsed := time.Since(start)

	requests := len(Normalize(ref))
	if s.config.EnableMetrics {
		s.metrics.RecordRun(policy.Name(), requests, faults, elapsed)
	}

	s.logger.Debug("policy run complete",
		slog.String("policy", policy.Name()),
		slog.Int("requests", requests),
		slog.Int("faults", faults),
		slog.Int("num_pages", s.config.NumPages),
		slog.Int("num_frames", s.config.NumFrames),
		slog.Duration("elapsed", elapsed),
	)

	return faults
}

// LoadTrace reads the configured trace file. Files with a .bin or
// .trace extension use the binary format (memory-mapped when the
// configuration asks for it); anything else is parsed as text.
func (s *Simulator) LoadTrace() ([]int, error) {
	path := s.config.TracePath
	if path == "" {
		return nil, ErrTraceRead("LoadTrace", "", os.ErrNotExist)
	}

	switch filepath.Ext(path) {
	case ".bin", ".trace":
		if s.config.UseMmap {
			reader, err := OpenMmapTrace(path)
			if err != nil {
				return nil, err
			}
			defer reader.Close()
			return reader.RefString()
		}
		return ReadTraceFile(path)
	default:
		return LoadTextTrace(path)
	}
}

// GenerateRefString produces a random reference string using the
// configured length and upper bound
func (s *Simulator) GenerateRefString() ([]int, error) {
	return Generate(s.config.RefStringLength, s.config.RefStringUpperBound)
}
