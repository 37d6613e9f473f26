package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	History struct {
		Size             int           `yaml:"size"`
		BaseRoundNumber  int64         `yaml:"base_round_number"`
		Interval         time.Duration `yaml:"interval"`
		CrashProbability *float64      `yaml:"crash_probability"` // nil takes the default, 0 disables crashes
		MinMultiplier    float64       `yaml:"min_multiplier"`
		MaxMultiplier    float64       `yaml:"max_multiplier"`
	} `yaml:"history"`
	Prediction struct {
		BatchSize     int           `yaml:"batch_size"`
		Latency       time.Duration `yaml:"latency"`
		MinMultiplier float64       `yaml:"min_multiplier"`
		MaxMultiplier float64       `yaml:"max_multiplier"`
		MinConfidence int           `yaml:"min_confidence"`
		MaxConfidence int           `yaml:"max_confidence"`
	} `yaml:"prediction"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		File       string `yaml:"file"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"logging"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// LoadDotEnv loads a .env file into the process environment if one exists.
// Variables already set are left alone.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HISTORY_SIZE: %w", err)
		}
		cfg.History.Size = n
	}
	if v := os.Getenv("HISTORY_BASE_ROUND"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid HISTORY_BASE_ROUND: %w", err)
		}
		cfg.History.BaseRoundNumber = n
	}
	if v := os.Getenv("HISTORY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HISTORY_INTERVAL: %w", err)
		}
		cfg.History.Interval = d
	}
	if v := os.Getenv("CRASH_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CRASH_PROBABILITY: %w", err)
		}
		cfg.History.CrashProbability = &p
	}
	if v := os.Getenv("PREDICTION_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_BATCH_SIZE: %w", err)
		}
		cfg.Prediction.BatchSize = n
	}
	if v := os.Getenv("PREDICTION_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTION_LATENCY: %w", err)
		}
		cfg.Prediction.Latency = d
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.History.Size == 0 {
		cfg.History.Size = 100
	}
	if cfg.History.BaseRoundNumber == 0 {
		cfg.History.BaseRoundNumber = 1000
	}
	if cfg.History.Interval == 0 {
		cfg.History.Interval = 2 * time.Minute
	}
	if cfg.History.CrashProbability == nil {
		p := 0.3
		cfg.History.CrashProbability = &p
	}
	if cfg.History.MinMultiplier == 0 {
		cfg.History.MinMultiplier = 1
	}
	if cfg.History.MaxMultiplier == 0 {
		cfg.History.MaxMultiplier = 16
	}
	if cfg.Prediction.BatchSize == 0 {
		cfg.Prediction.BatchSize = 5
	}
	if cfg.Prediction.Latency == 0 {
		cfg.Prediction.Latency = time.Second
	}
	if cfg.Prediction.MinMultiplier == 0 {
		cfg.Prediction.MinMultiplier = 1
	}
	if cfg.Prediction.MaxMultiplier == 0 {
		cfg.Prediction.MaxMultiplier = 11
	}
	if cfg.Prediction.MinConfidence == 0 {
		cfg.Prediction.MinConfidence = 60
	}
	if cfg.Prediction.MaxConfidence == 0 {
		cfg.Prediction.MaxConfidence = 100
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = ":memory:"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 7
	}
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if c.History.Size <= 0 {
		return fmt.Errorf("history.size must be positive")
	}
	if c.History.Interval < 0 {
		return fmt.Errorf("history.interval must not be negative")
	}
	if p := c.History.CrashProbability; p == nil || *p < 0 || *p > 1 {
		return fmt.Errorf("history.crash_probability must be within [0, 1]")
	}
	if c.History.MinMultiplier <= 0 || c.History.MaxMultiplier < c.History.MinMultiplier {
		return fmt.Errorf("history multiplier range [%v, %v] is invalid", c.History.MinMultiplier, c.History.MaxMultiplier)
	}
	if c.Prediction.BatchSize <= 0 {
		return fmt.Errorf("prediction.batch_size must be positive")
	}
	if c.Prediction.Latency < 0 {
		return fmt.Errorf("prediction.latency must not be negative")
	}
	if c.Prediction.MinMultiplier <= 0 || c.Prediction.MaxMultiplier < c.Prediction.MinMultiplier {
		return fmt.Errorf("prediction multiplier range [%v, %v] is invalid", c.Prediction.MinMultiplier, c.Prediction.MaxMultiplier)
	}
	if c.Prediction.MinConfidence < 60 || c.Prediction.MaxConfidence > 100 || c.Prediction.MaxConfidence < c.Prediction.MinConfidence {
		return fmt.Errorf("prediction confidence range [%d, %d] is invalid", c.Prediction.MinConfidence, c.Prediction.MaxConfidence)
	}
	return nil
}
