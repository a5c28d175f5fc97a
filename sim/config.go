package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds simulator configuration
type Config struct {
	// Policy Configuration
	Policy    string `json:"policy"`     // Replacement policy (fifo, lru, opt)
	NumPages  int    `json:"num_pages"`  // Process address space size in pages
	NumFrames int    `json:"num_frames"` // Physical frames available

	// Trace Configuration
	TracePath        string `json:"trace_path"`        // Reference string trace file
	TraceCompression string `json:"trace_compression"` // Binary trace compression (none, snappy, lz4)
	UseMmap          bool   `json:"use_mmap"`          // Memory-map binary traces instead of buffered reads

	// Generation Configuration
	RefStringLength     int `json:"ref_string_length"`      // Length of generated reference strings
	RefStringUpperBound int `json:"ref_string_upper_bound"` // Exclusive upper bound for generated page IDs

	// Performance Configuration
	EnableMetrics bool   `json:"enable_metrics"` // Whether to collect performance metrics
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration.
// Page and frame defaults match the classic demo setup: a 9-page
// address space simulated over 7 frames with 20-element strings.
func DefaultConfig() *Config {
	return &Config{
		Policy:              PolicyOPT, // Optimal baseline by default
		NumPages:            9,
		NumFrames:           7,
		TracePath:           "",
		TraceCompression:    "none",
		UseMmap:             false,
		RefStringLength:     20,
		RefStringUpperBound: 9,
		EnableMetrics:       true,
		LogLevel:            "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	// Policy
	if val := os.Getenv("PAGESIM_POLICY"); val != "" {
		config.Policy = val
	}

	if val := os.Getenv("PAGESIM_NUM_PAGES"); val != "" {
		if pages, err := strconv.Atoi(val); err == nil {
			config.NumPages = pages
		}
	}

	if val := os.Getenv("PAGESIM_NUM_FRAMES"); val != "" {
		if frames, err := strconv.Atoi(val); err == nil {
			config.NumFrames = frames
		}
	}

	// Trace
	if val := os.Getenv("PAGESIM_TRACE_PATH"); val != "" {
		config.TracePath = val
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		config.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_USE_MMAP"); val != "" {
		config.UseMmap = val == "true" || val == "1"
	}

	// Generation
	if val := os.Getenv("PAGESIM_REF_STRING_LENGTH"); val != "" {
		if length, err := strconv.Atoi(val); err == nil {
			config.RefStringLength = length
		}
	}

	if val := os.Getenv("PAGESIM_REF_STRING_UPPER_BOUND"); val != "" {
		if bound, err := strconv.Atoi(val); err == nil {
			config.RefStringUpperBound = bound
		}
	}

	// Performance
	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		config.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Policy {
	case PolicyFIFO, PolicyLRU, PolicyOPT:
	default:
		return fmt.Errorf("invalid policy: %s (must be fifo, lru, or opt)", c.Policy)
	}

	if c.NumFrames < 1 {
		return fmt.Errorf("frame count must be at least 1")
	}

	if c.NumPages < 0 {
		return fmt.Errorf("page count must be non-negative")
	}

	if c.RefStringLength < 0 {
		return fmt.Errorf("reference string length must be non-negative")
	}

	if c.RefStringUpperBound < 1 {
		return fmt.Errorf("reference string upper bound must be at least 1")
	}

	switch c.TraceCompression {
	case "none", "snappy", "lz4":
	default:
		return fmt.Errorf("invalid trace compression: %s (must be none, snappy, or lz4)", c.TraceCompression)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
