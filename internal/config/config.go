package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for a fresh config file.
const (
	DefaultRecords   = 1_000_000
	DefaultPageSize  = 30
	DefaultLoadDelay = 100 * time.Millisecond
	DefaultSeed      = 1
	DefaultLogLevel  = "info"
)

// Store manages the runtime configuration for the customer table.
type Store struct {
	path   string
	Config Data
}

// Data represents persisted preferences.
type Data struct {
	Records        int           `yaml:"records"`
	PageSize       int           `yaml:"page_size"`
	LoadDelay      time.Duration `yaml:"load_delay"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	Seed           int64         `yaml:"seed"`
	AddedBy        []string      `yaml:"added_by"`
	Timezone       string        `yaml:"timezone"`
	Source         SourceConfig  `yaml:"source"`
	Log            LogConfig     `yaml:"log"`
}

// SourceConfig selects where records come from.
type SourceConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path,omitempty"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Load reads the config at path, creating it with defaults when missing. An empty
// path uses the default location under the user config directory.
func Load(path string) (*Store, error) {
	cfgPath := path
	if strings.TrimSpace(cfgPath) == "" {
		resolved, err := resolvePath()
		if err != nil {
			return nil, err
		}
		cfgPath = resolved
	}

	cfg := Data{}
	if _, err := os.Stat(cfgPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
		cfg = defaultConfig()
		if err := writeConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	} else {
		bytes, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	return &Store{path: cfgPath, Config: cfg}, nil
}

// Save writes the current config values to disk.
func (s *Store) Save() error {
	if s == nil {
		return errors.New("nil config store")
	}
	return writeConfig(s.path, s.Config)
}

// Path returns the config file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Dir returns the directory holding the config file.
func (s *Store) Dir() string {
	return filepath.Dir(s.Path())
}

func resolvePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func dataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve config directory: %w", err)
		}
	}
	dir := filepath.Join(base, "crmtable")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

func writeConfig(path string, cfg Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig() Data {
	cfg := Data{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero values. SearchDebounce stays zero: search is immediate.
func (d *Data) applyDefaults() {
	if d.Records <= 0 {
		d.Records = DefaultRecords
	}
	if d.PageSize <= 0 {
		d.PageSize = DefaultPageSize
	}
	if d.LoadDelay <= 0 {
		d.LoadDelay = DefaultLoadDelay
	}
	if d.SearchDebounce < 0 {
		d.SearchDebounce = 0
	}
	if d.Seed == 0 {
		d.Seed = DefaultSeed
	}
	if len(d.AddedBy) == 0 {
		d.AddedBy = []string{"Kartikey Mishra"}
	}
	if d.Timezone == "" {
		d.Timezone = defaultTimezone()
	}
	if d.Source.Kind == "" {
		d.Source.Kind = "synthetic"
	}
	if d.Log.Level == "" {
		d.Log.Level = DefaultLogLevel
	}
}

func defaultTimezone() string {
	if locName := time.Now().Location().String(); locName != "Local" && locName != "" {
		return locName
	}
	return "UTC"
}

// Location returns the configured timezone Location, defaulting to UTC on error.
func (s *Store) Location() *time.Location {
	if s == nil {
		return time.UTC
	}
	if loc, err := time.LoadLocation(s.Config.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
