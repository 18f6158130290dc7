// Package config provides YAML-based configuration loading for Cave.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvSubnetRoot names the environment variable that points at the subnet
// checkout. It overrides subnet_root from the config file.
const EnvSubnetRoot = "ABSOLUTE_PATH_TO_SUBNET_REPO"

// ErrConfigurationMissing is returned when no subnet root is configured.
var ErrConfigurationMissing = errors.New("configuration missing")

// Config is the top-level Cave configuration, loaded from cave.yaml.
type Config struct {
	SubnetRoot string          `yaml:"subnet_root"`
	LogFile    string          `yaml:"log_file"`
	Database   string          `yaml:"database"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// DashboardConfig holds settings for the HTTP view server.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig controls Cave's own diagnostic logging, not the subnet logs
// it displays.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Paths are the resolved locations of the two stores Cave reads.
type Paths struct {
	Root     string
	LogFile  string
	Database string
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: the environment alone may configure Cave.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets the environment override file settings.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSubnetRoot); v != "" {
		c.SubnetRoot = v
	}
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	c.SubnetRoot = strings.TrimSpace(c.SubnetRoot)
	if len(c.SubnetRoot) > 1 {
		c.SubnetRoot = strings.TrimRight(c.SubnetRoot, "/")
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8501
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 100
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = 30
	}
}

// validate checks that all fields are consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d out of range", c.Dashboard.Port))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be debug, info, warn or error", c.Logging.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Resolve returns the store locations. Explicit log_file and database
// settings win over the paths derived from the subnet root. Without either,
// it returns ErrConfigurationMissing.
func (c *Config) Resolve() (Paths, error) {
	p := Paths{Root: c.SubnetRoot, LogFile: c.LogFile, Database: c.Database}
	if p.Root == "" && (p.LogFile == "" || p.Database == "") {
		return Paths{}, fmt.Errorf("%w: set %s or subnet_root in the config file", ErrConfigurationMissing, EnvSubnetRoot)
	}
	if p.LogFile == "" {
		p.LogFile = filepath.Join(p.Root, "logging", "logs.json")
	}
	if p.Database == "" {
		p.Database = filepath.Join(p.Root, "validator.db")
	}
	return p, nil
}
