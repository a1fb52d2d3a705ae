// Package config loads toolkit settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// Config holds application configuration
type Config struct {
	Start      qubit.Point
	Tolerance  float64
	Playback   time.Duration
	FrameTick  time.Duration
	SeedQubits int
	LogLevel   string
	LogPretty  bool
	Addr       string
}

// Load reads configuration from environment variables, after loading a
// .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Start: qubit.Point{
			X: getEnvAsFloat("QC_START_X", qubit.DefaultStart.X),
			Y: getEnvAsFloat("QC_START_Y", qubit.DefaultStart.Y),
		},
		Tolerance:  getEnvAsFloat("QC_TOLERANCE", qubit.DefaultTolerance),
		Playback:   time.Duration(getEnvAsInt("QC_PLAYBACK_MS", int(qubit.DefaultPlaybackDuration))) * time.Millisecond,
		FrameTick:  time.Duration(getEnvAsInt("QC_FRAME_MS", 50)) * time.Millisecond,
		SeedQubits: getEnvAsInt("QC_SEED_QUBITS", 3),
		LogLevel:   getEnv("QC_LOG_LEVEL", "info"),
		LogPretty:  getEnvAsBool("QC_LOG_PRETTY", true),
		Addr:       getEnv("QC_ADDR", ":8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configured values are usable.
func (c *Config) Validate() error {
	if c.Start.X < 0 || c.Start.X >= qubit.Width {
		return fmt.Errorf("QC_START_X %.3f outside [0, %g)", c.Start.X, qubit.Width)
	}
	if c.Start.Y < 0 || c.Start.Y > qubit.Height {
		return fmt.Errorf("QC_START_Y %.3f outside [0, %g]", c.Start.Y, qubit.Height)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("QC_TOLERANCE must be positive")
	}
	if c.Playback <= 0 {
		return fmt.Errorf("QC_PLAYBACK_MS must be positive")
	}
	if c.FrameTick <= 0 {
		return fmt.Errorf("QC_FRAME_MS must be positive")
	}
	if c.SeedQubits < 0 {
		return fmt.Errorf("QC_SEED_QUBITS must not be negative")
	}
	return nil
}

// RegistryOptions returns the registry settings carried by the config.
func (c *Config) RegistryOptions() qubit.RegistryOptions {
	start := c.Start
	return qubit.RegistryOptions{
		Start:     &start,
		Tolerance: c.Tolerance,
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
