package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"placebrowser/internal/api"
)

// EnvPrefix prefixes every environment override, e.g. PLACEBROWSER_API_BASE_URL.
const EnvPrefix = "PLACEBROWSER"

// Config contains runtime options for the browser and the exporter.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
	TUI    TUIConfig    `mapstructure:"tui"`
}

// APIConfig points the client at the REST API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// HTTPTimeout bounds each request; zero means no timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	// File receives logs; empty selects DefaultLogFile().
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ExportConfig controls the static HTML export.
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	Workers  int    `mapstructure:"workers"`
	Comments bool   `mapstructure:"comments"`
}

// TUIConfig controls the interactive browser.
type TUIConfig struct {
	// ExportPath is where the "e" key writes the current document.
	ExportPath string `mapstructure:"export_path"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	defaultWorkers := runtime.NumCPU()
	if defaultWorkers < 2 {
		defaultWorkers = 2
	}

	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.http_timeout", time.Duration(0))
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("export.dir", "./placebrowser-export")
	v.SetDefault("export.workers", defaultWorkers)
	v.SetDefault("export.comments", false)
	v.SetDefault("tui.export_path", "./placebrowser.html")
}

// Setup prepares v to read an optional config file and environment overrides.
// cfgFile, when set, replaces the search path.
func Setup(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogFile()
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: missing host")
	}
	if c.API.HTTPTimeout < 0 {
		return fmt.Errorf("api.http_timeout: must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("export.workers: must be at least 1")
	}
	return nil
}

// ConfigDir returns the per-user configuration directory.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "placebrowser")
	}
	return filepath.Join(".", ".placebrowser")
}

// DefaultLogFile returns the log path used when log.file is unset.
func DefaultLogFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "placebrowser", "placebrowser.log")
	}
	return filepath.Join(os.TempDir(), "placebrowser.log")
}
