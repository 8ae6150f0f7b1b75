// Package config loads the settings of the astar command line tool.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/astar/v2/grid"
)

// Config holds the demo and benchmark settings
type Config struct {
	// Map generation
	Size                   int     `yaml:"size" validate:"min=1,max=4096"`
	ObstructionProbability float64 `yaml:"obstruction_probability" validate:"gte=0,lt=1"`
	Seed                   uint64  `yaml:"seed"`

	// Benchmark
	Searches int `yaml:"searches" validate:"min=1"`
	Workers  int `yaml:"workers" validate:"min=1"`

	// Search behaviour
	ValidateEndpoints bool `yaml:"validate_endpoints"`

	// Logging
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Size:                   grid.DefaultSize,
		ObstructionProbability: grid.DefaultObstruction,
		Searches:               100,
		Workers:                4,
		LogLevel:               "info",
	}
}

// Load reads defaults, then the YAML file at path (if path is not empty),
// then ASTAR_* environment variables. It does not validate: callers apply
// their own overrides first and then call Validate once.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Size = getEnvInt("ASTAR_SIZE", cfg.Size)
	cfg.ObstructionProbability = getEnvFloat("ASTAR_OBSTRUCTION", cfg.ObstructionProbability)
	cfg.Seed = getEnvUint("ASTAR_SEED", cfg.Seed)
	cfg.Searches = getEnvInt("ASTAR_SEARCHES", cfg.Searches)
	cfg.Workers = getEnvInt("ASTAR_WORKERS", cfg.Workers)
	cfg.ValidateEndpoints = getEnvBool("ASTAR_VALIDATE_ENDPOINTS", cfg.ValidateEndpoints)
	cfg.LogLevel = getEnv("ASTAR_LOG_LEVEL", cfg.LogLevel)
	return cfg, nil
}

// Validate checks field ranges
func (c *Config) Validate() error {
	return c.ValidateFields()
}

// ValidateFields checks only the named struct fields, or all of them when none are named.
func (c *Config) ValidateFields(fields ...string) error {
	validate := validator.New()
	var err error
	if len(fields) == 0 {
		err = validate.Struct(c)
	} else {
		err = validate.StructPartial(c, fields...)
	}
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
