package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Hanaasagi/repat/internal"
	"github.com/Hanaasagi/repat/internal/logger"
	"github.com/Hanaasagi/repat/pkg/filesearch"
	"github.com/adrg/xdg"
)

type Config struct {
	Core   CoreConfig   `toml:"core"`
	Colors ColorConfig  `toml:"colors"`
	Search SearchConfig `toml:"search"`
}

type CoreConfig struct {
	Color     string `toml:"color"` // "auto", "always" or "never"
	StripANSI bool   `toml:"strip_ansi"`
	LogLevel  string `toml:"log_level"`
}

type ColorConfig struct {
	Groups    []string `toml:"groups"`
	Insertion string   `toml:"insertion"`
}

type SearchConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

func NewDefaultConfig() *Config {
	tool := filesearch.DefaultTool()
	return &Config{
		Core: CoreConfig{
			Color:     colorAuto,
			StripANSI: false,
			LogLevel:  "info",
		},
		Colors: ColorConfig{
			Groups:    append([]string(nil), internal.DefaultGroupColors...),
			Insertion: internal.DefaultInsertionColor,
		},
		Search: SearchConfig{
			Command: tool.Command,
			Args:    tool.Args,
		},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/repat/config.toml
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the values the decoder cannot
func (c *Config) Validate() error {
	switch c.Core.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("core.color must be one of auto, always, never; got %q", c.Core.Color)
	}

	if len(c.Colors.Groups) < internal.MinPaletteSize {
		return fmt.Errorf("colors.groups needs at least %d entries, got %d", internal.MinPaletteSize, len(c.Colors.Groups))
	}

	if _, ok := logger.LevelFromString(c.Core.LogLevel); !ok {
		return fmt.Errorf("unknown log level: %q", c.Core.LogLevel)
	}

	if c.Search.Command == "" {
		return fmt.Errorf("search.command must not be empty")
	}

	return nil
}

func (c *Config) searchTool() filesearch.Tool {
	return filesearch.Tool{Command: c.Search.Command, Args: c.Search.Args}
}
