package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"quant-bot/internal/data"
	"quant-bot/internal/strategy"
)

// Config is the on-disk configuration shape (YAML) for one bot.
type Config struct {
	// Optional: load strategy settings from a separate YAML (shared
	// presets). If both StrategyFile and Strategy are provided,
	// Strategy overrides StrategyFile.
	StrategyFile string         `yaml:"strategy_file"`
	Bot          BotConfig      `yaml:"bot"`
	Strategy     StrategyConfig `yaml:"strategy"`
	Store        StoreConfig    `yaml:"store"`
}

type BotConfig struct {
	ID          string  `yaml:"id"`
	Symbol      string  `yaml:"symbol"`
	Interval    string  `yaml:"interval"` // e.g. "1m", "1h", "1d"
	Period      string  `yaml:"period"`   // e.g. "7d", "90d"
	InitialCash float64 `yaml:"initial_cash"`
	Window      int     `yaml:"window"` // decision-aggregation window

	// CacheMaxAge bounds bar-cache staleness; zero disables caching.
	CacheMaxAge Duration `yaml:"cache_max_age"`
}

// Duration decodes YAML values like "30m" or "1h" via
// time.ParseDuration; bare integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type StoreConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Keep configs concise: a missing window means "act on the latest
	// signal", matching the runtime default.
	if c.Bot.Window == 0 {
		c.Bot.Window = 1
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If strategy_file is set, load it and merge in any explicit
	// overrides from c.Strategy.
	if c.StrategyFile != "" {
		stratPath := c.StrategyFile
		if !filepath.IsAbs(stratPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, but fall back to the provided path (relative
			// to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), stratPath)
			if _, err := os.Stat(cand); err == nil {
				stratPath = cand
			}
		}
		loaded, err := loadStrategyFile(stratPath)
		if err != nil {
			return nil, err
		}
		c.Strategy = MergeStrategy(loaded, c.Strategy)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Bot.ID == "" {
		return errors.New("bot.id is required")
	}
	if c.Bot.Symbol == "" {
		return errors.New("bot.symbol is required")
	}
	if _, err := data.ParseDuration(c.Bot.Interval); err != nil {
		return fmt.Errorf("bot.interval invalid: %w", err)
	}
	if _, err := data.ParseDuration(c.Bot.Period); err != nil {
		return fmt.Errorf("bot.period invalid: %w", err)
	}
	if c.Bot.InitialCash <= 0 {
		return errors.New("bot.initial_cash must be > 0")
	}
	if c.Bot.Window < 1 {
		return errors.New("bot.window must be >= 1")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	// Validate strategy settings by constructing the signaler.
	if _, err := strategy.Build(c.Strategy.Name, c.Strategy.Params); err != nil {
		return fmt.Errorf("strategy config invalid: %w", err)
	}
	return nil
}

type strategyFileWrapper struct {
	Strategy StrategyConfig `yaml:"strategy"`
}

func loadStrategyFile(path string) (StrategyConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return StrategyConfig{}, err
	}
	var w strategyFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return StrategyConfig{}, err
	}
	return w.Strategy, nil
}

// MergeStrategy overlays non-zero fields from override onto base. This
// is used when loading a strategy preset and then applying per-bot
// overrides.
func MergeStrategy(base, override StrategyConfig) StrategyConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if len(override.Params) > 0 {
		if out.Params == nil {
			out.Params = map[string]any{}
		}
		for k, v := range override.Params {
			out.Params[k] = v
		}
	}
	return out
}
