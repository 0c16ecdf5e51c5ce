package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
bot:
  id: test-bot
  symbol: AAPL
  interval: 1h
  period: 90d
  initial_cash: 10000
  cache_max_age: 30m
strategy:
  name: sma-cross
  params:
    fast: 5
    slow: 20
`

func TestLoadValidConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-bot", cfg.Bot.ID)
	assert.Equal(t, "AAPL", cfg.Bot.Symbol)
	assert.Equal(t, 10000.0, cfg.Bot.InitialCash)
	assert.Equal(t, Duration(30*time.Minute), cfg.Bot.CacheMaxAge)
	// Omitted window defaults to acting on the latest signal.
	assert.Equal(t, 1, cfg.Bot.Window)
	assert.Equal(t, "sma-cross", cfg.Strategy.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadFields(t *testing.T) {
	base := func() *Config {
		return &Config{
			Bot: BotConfig{
				ID: "b", Symbol: "AAPL", Interval: "1h", Period: "90d",
				InitialCash: 1000, Window: 1,
			},
			Strategy: StrategyConfig{Name: "momentum"},
		}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Bot.ID = ""
	require.Error(t, c.Validate())

	c = base()
	c.Bot.Interval = "soon"
	require.Error(t, c.Validate())

	c = base()
	c.Bot.InitialCash = 0
	require.Error(t, c.Validate())

	c = base()
	c.Strategy = StrategyConfig{Name: "sma-cross", Params: map[string]any{"fast": 50, "slow": 10}}
	require.Error(t, c.Validate())

	c = base()
	c.Strategy.Name = "unknown"
	require.Error(t, c.Validate())
}

func TestStrategyFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "preset.yaml", `
strategy:
  name: sma-cross
  params:
    fast: 5
    slow: 20
`)
	cfgPath := writeFile(t, dir, "config.yaml", `
strategy_file: preset.yaml
bot:
  id: test-bot
  symbol: AAPL
  interval: 1h
  period: 90d
  initial_cash: 10000
strategy:
  params:
    slow: 40
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Preset supplies the name, overrides win per-param.
	assert.Equal(t, "sma-cross", cfg.Strategy.Name)
	assert.Equal(t, 5, cfg.Strategy.Params["fast"])
	assert.Equal(t, 40, cfg.Strategy.Params["slow"])
}

func TestMergeStrategy(t *testing.T) {
	base := StrategyConfig{Name: "sma-cross", Params: map[string]any{"fast": 5, "slow": 20}}

	out := MergeStrategy(base, StrategyConfig{})
	assert.Equal(t, base, out)

	out = MergeStrategy(base, StrategyConfig{Name: "momentum", Params: map[string]any{"lookback": 3}})
	assert.Equal(t, "momentum", out.Name)
	assert.Equal(t, 3, out.Params["lookback"])
	assert.Equal(t, 5, out.Params["fast"])
}
