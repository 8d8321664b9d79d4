package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the public extract the dashboard was built around.
const DefaultSource = "https://raw.githubusercontent.com/dakotaroark/render/main/al_shab.csv"

// DefaultPath is looked up in the working directory when no --config is given.
const DefaultPath = "attackboard.yml"

// Config is the root configuration.
type Config struct {
	Attackboard AttackboardConfig `yaml:"attackboard"`
}

// AttackboardConfig is the project configuration.
type AttackboardConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
	Briefing  BriefingConfig  `yaml:"briefing"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"` // gin mode: debug|release|test
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SourceConfig selects where attack records are read from.
type SourceConfig struct {
	Kind       string        `yaml:"kind"` // csv|firestore
	Path       string        `yaml:"path"` // local file or http(s) URL
	Timeout    time.Duration `yaml:"timeout"`
	Collection string        `yaml:"collection"`

	// FirebaseCredentials is the base64 service-account JSON, env only.
	FirebaseCredentials string `yaml:"-"`
}

// GeocodeConfig controls coordinate backfill for records without lat/long.
type GeocodeConfig struct {
	Enabled bool `yaml:"enabled"`

	APIKey string `yaml:"-"`
}

// BriefingConfig controls the generated narrative summary.
type BriefingConfig struct {
	Disabled  bool          `yaml:"disabled"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`

	APIKey string `yaml:"-"`
}

// Active reports whether briefings can be generated.
func (b BriefingConfig) Active() bool {
	return !b.Disabled && b.APIKey != ""
}

// DashboardConfig holds presentation constants.
type DashboardConfig struct {
	Title     string     `yaml:"title"`
	Subtitle  string     `yaml:"subtitle"`
	PageSize  int        `yaml:"page_size"`
	MapCenter [2]float64 `yaml:"map_center"`
	MapZoom   int        `yaml:"map_zoom"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads .env, the YAML file at path (optional when it is the default path),
// then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{}
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	ApplyEnv(cfg)
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv copies secrets and overrides from the environment.
func ApplyEnv(cfg *Config) {
	a := &cfg.Attackboard
	if v := os.Getenv("ATTACKBOARD_SOURCE"); v != "" {
		a.Source.Path = v
	}
	if v := os.Getenv("ATTACKBOARD_ADDR"); v != "" {
		a.Server.Addr = v
	}
	if v := os.Getenv("ATTACKBOARD_LOG_LEVEL"); v != "" {
		a.Logging.Level = v
	}
	a.Source.FirebaseCredentials = os.Getenv("FIREBASE_CREDENTIALS")
	a.Geocode.APIKey = os.Getenv("MAPS_CREDENTIALS")
	a.Briefing.APIKey = os.Getenv("OPENAI_API_KEY")
}

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) {
	a := &cfg.Attackboard

	if a.Server.Addr == "" {
		a.Server.Addr = ":8080"
	}
	if a.Server.Mode == "" {
		a.Server.Mode = "release"
	}
	if a.Server.ReadTimeout <= 0 {
		a.Server.ReadTimeout = 15 * time.Second
	}
	if a.Server.ShutdownTimeout <= 0 {
		a.Server.ShutdownTimeout = 10 * time.Second
	}

	if a.Source.Kind == "" {
		a.Source.Kind = "csv"
	}
	if a.Source.Path == "" && a.Source.Kind == "csv" {
		a.Source.Path = DefaultSource
	}
	if a.Source.Timeout <= 0 {
		a.Source.Timeout = 30 * time.Second
	}
	if a.Source.Collection == "" {
		a.Source.Collection = "attacks"
	}

	if a.Briefing.Model == "" {
		a.Briefing.Model = "gpt-4o-mini"
	}
	if a.Briefing.MaxTokens <= 0 {
		a.Briefing.MaxTokens = 250
	}
	if a.Briefing.Timeout <= 0 {
		a.Briefing.Timeout = 30 * time.Second
	}

	if a.Dashboard.Title == "" {
		a.Dashboard.Title = "Al-Shabaab Attack Dashboard"
	}
	if a.Dashboard.Subtitle == "" {
		a.Dashboard.Subtitle = "Data is from 2021, thanks to START from University of Maryland"
	}
	if a.Dashboard.PageSize <= 0 {
		a.Dashboard.PageSize = 10
	}
	if a.Dashboard.MapCenter == [2]float64{} {
		a.Dashboard.MapCenter = [2]float64{5.152149, 46.199616}
	}
	if a.Dashboard.MapZoom <= 0 {
		a.Dashboard.MapZoom = 6
	}

	if a.Logging.Level == "" {
		a.Logging.Level = "info"
	}
}

// Validate rejects configurations the loader cannot act on.
func (c *Config) Validate() error {
	src := c.Attackboard.Source
	switch strings.ToLower(src.Kind) {
	case "csv":
		if src.Path == "" {
			return errors.New("source.path is required for csv sources")
		}
	case "firestore":
		if src.FirebaseCredentials == "" {
			return errors.New("FIREBASE_CREDENTIALS must be set for firestore sources")
		}
	default:
		return fmt.Errorf("unknown source.kind %q (want csv or firestore)", src.Kind)
	}

	switch mode := c.Attackboard.Server.Mode; mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown server.mode %q (want %s, %s or %s)", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
	return nil
}
