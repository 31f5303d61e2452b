package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type ServerConfig struct {
	Port            string `yaml:"port"`
	Mode            string `yaml:"mode"` // gin mode: debug, release, test
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	StaticDir       string `yaml:"static_dir"`
	ImagesDir       string `yaml:"images_dir"`
}

type CatalogConfig struct {
	Path  string `yaml:"path"` // empty = embedded catalog
	Watch bool   `yaml:"watch"`
}

type SessionConfig struct {
	IdleTimeout   string `yaml:"idle_timeout"`
	SweepInterval string `yaml:"sweep_interval"`
	CookieName    string `yaml:"cookie_name"`
}

type StoreConfig struct {
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type MailConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	To   string `yaml:"to"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
	Store   StoreConfig   `yaml:"store"`
	Mail    MailConfig    `yaml:"mail"`
	Logging LoggingConfig `yaml:"logging"`
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) IdleTimeout() time.Duration {
	return parseDuration(c.Session.IdleTimeout, 30*time.Minute)
}

func (c *Config) SweepInterval() time.Duration {
	return parseDuration(c.Session.SweepInterval, 5*time.Minute)
}

// RetentionDuration accepts Go durations and a "Nd" day form.
func (c *Config) RetentionDuration() time.Duration {
	return parseDuration(c.Store.Retention, 365*24*time.Hour)
}

// StorePath defaults to ventures/ventures.db under the XDG data home.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(xdg.DataHome, "ventures", "ventures.db")
}

// MailConfigured reports whether SMTP credentials are present.
func (c *Config) MailConfigured() bool {
	return c.Mail.User != "" && c.Mail.Pass != ""
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, ok := parseDays(s); ok {
		return d
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseDays(s string) (time.Duration, bool) {
	if len(s) < 2 || s[len(s)-1] != 'd' {
		return 0, false
	}
	days, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || days <= 0 {
		return 0, false
	}
	return time.Duration(days) * 24 * time.Hour, true
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load builds the config from embedded defaults, then the YAML file at
// path (if any), then environment variables.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv keeps the variable names the site has always read.
func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, "PORT")
	set(&cfg.Server.Mode, "GIN_MODE")
	set(&cfg.Catalog.Path, "VENTURES_CATALOG")
	set(&cfg.Store.Path, "VENTURES_DB")
	set(&cfg.Mail.Host, "SMTP_HOST")
	set(&cfg.Mail.Port, "SMTP_PORT")
	set(&cfg.Mail.User, "SMTP_USER")
	set(&cfg.Mail.Pass, "SMTP_PASS")
	set(&cfg.Mail.To, "TO_EMAIL")
	set(&cfg.Logging.Level, "LOG_LEVEL")
}

func validate(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", cfg.Server.Port)
	}
	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q is not one of debug, release, test", cfg.Server.Mode)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	durations := map[string]string{
		"server.shutdown_timeout": cfg.Server.ShutdownTimeout,
		"session.idle_timeout":    cfg.Session.IdleTimeout,
		"session.sweep_interval":  cfg.Session.SweepInterval,
		"store.retention":         cfg.Store.Retention,
	}
	for name, v := range durations {
		if v == "" {
			continue
		}
		if _, ok := parseDays(v); ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %q", name, v)
		}
	}
	if cfg.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if cfg.Mail.Port != "" {
		if _, err := strconv.Atoi(cfg.Mail.Port); err != nil {
			return fmt.Errorf("mail.port must be numeric, got %q", cfg.Mail.Port)
		}
	}
	return nil
}
