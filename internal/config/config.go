package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Owners  OwnersConfig  `mapstructure:"owners"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds list server configuration
type ServerConfig struct {
	URL string `mapstructure:"url"` // Shared-lists backend URL
}

// OwnersConfig names the two users the lists are shared between
type OwnersConfig struct {
	First  string `mapstructure:"first"`
	Second string `mapstructure:"second"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultTab   string `mapstructure:"default_tab"`   // Tab opened when no saved tab exists
	ShowRedeemed bool   `mapstructure:"show_redeemed"` // Keep redeemed coupons visible (struck through)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// SlogLevel maps the configured level string onto slog's levels. The
// value is user-supplied yaml, so anything unrecognized means Info
// rather than an error.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToUpper(strings.TrimSpace(c.Level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "",
		},
		Owners: OwnersConfig{
			First:  "Barbara",
			Second: "Nico",
		},
		UI: UIConfig{
			DefaultTab:   "movies",
			ShowRedeemed: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// IsConfigured reports whether a server URL has been set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "duet", "duet.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "duet", "duet.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "duet")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "duet")
	}
}

// DefaultStorePath returns the default session store location
func DefaultStorePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "duet", "duet.db")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "duet", "duet.db")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("DUET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("server.url", cfg.Server.URL)
	viper.Set("owners.first", cfg.Owners.First)
	viper.Set("owners.second", cfg.Owners.Second)
	viper.Set("ui.default_tab", cfg.UI.DefaultTab)
	viper.Set("ui.show_redeemed", cfg.UI.ShowRedeemed)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	return viper.WriteConfigAs(filepath.Join(configPath, "config.yaml"))
}
