package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "SNAKEIFY_"

// Frontends
const (
	UIWindow   = "window"
	UITerminal = "terminal"
)

type Config struct {
	LogLevel int    `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	APIBase  string `yaml:"api_base"`
	UserID   int    `yaml:"user_id"`
	Catalog  string `yaml:"catalog"`
	CacheDir string `yaml:"cache_dir"`
	DataDir  string `yaml:"data_dir"`
	UI       string `yaml:"ui"`

	Game   GameConfig   `yaml:"game"`
	Audio  AudioConfig  `yaml:"audio"`
	Server ServerConfig `yaml:"server"`
}

type GameConfig struct {
	GridSize int `yaml:"grid_size"`
	CellSize int `yaml:"cell_size"`
	TickMS   int `yaml:"tick_ms"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	FadeMS  int     `yaml:"fade_ms"`
}

type ServerConfig struct {
	Port     string `yaml:"port"`
	DataFile string `yaml:"data_file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := preset()
	cfg.applyDefaults()
	return cfg
}

// preset holds the defaults whose zero value is a valid setting. YAML keeps
// them unless the key is present.
func preset() *Config {
	return &Config{Audio: AudioConfig{Enabled: true, Volume: 1}}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := preset()

	// Unmarshal the YAML data into the struct
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults plus
// environment overrides otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.APIBase == "" {
		c.APIBase = "http://localhost:8000"
	}
	if c.Catalog == "" {
		c.Catalog = "data/catalog.yaml"
	}
	if c.CacheDir == "" {
		c.CacheDir = "cache"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.UI == "" {
		c.UI = UIWindow
	}
	if c.LogFile == "" {
		c.LogFile = "snakeify.log"
	}

	if c.Game.GridSize <= 0 {
		c.Game.GridSize = 20
	}
	if c.Game.CellSize <= 0 {
		c.Game.CellSize = 20
	}
	if c.Game.TickMS <= 0 {
		c.Game.TickMS = 150
	}

	if c.Audio.FadeMS <= 0 {
		c.Audio.FadeMS = 400
	}

	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.DataFile == "" {
		c.Server.DataFile = "data/scores.json"
	}
}

// applyEnv overrides fields from SNAKEIFY_* variables
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"API_BASE":  &c.APIBase,
		"CATALOG":   &c.Catalog,
		"CACHE_DIR": &c.CacheDir,
		"DATA_DIR":  &c.DataDir,
		"UI":        &c.UI,
		"LOG_FILE":  &c.LogFile,
		"PORT":      &c.Server.Port,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"LOG_LEVEL": &c.LogLevel,
		"USER_ID":   &c.UserID,
		"TICK_MS":   &c.Game.TickMS,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", envPrefix, key, v, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv(envPrefix + "AUDIO"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUDIO=%q: %w", envPrefix, v, err)
		}
		c.Audio.Enabled = enabled
	}
	return nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if c.UI != UIWindow && c.UI != UITerminal {
		return fmt.Errorf("unknown ui %q: want %q or %q", c.UI, UIWindow, UITerminal)
	}
	if c.Game.GridSize < 4 {
		return fmt.Errorf("grid_size %d is too small", c.Game.GridSize)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume %.2f out of range [0, 1]", c.Audio.Volume)
	}
	return nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickMS) * time.Millisecond
}

func (c *Config) Fade() time.Duration {
	return time.Duration(c.Audio.FadeMS) * time.Millisecond
}
