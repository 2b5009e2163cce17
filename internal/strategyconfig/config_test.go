package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-9)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }},
		{"zero weight", func(c *Config) { c.Weights.ROE = 0 }},
		{"base sum off", func(c *Config) { c.Weights.Valuation = 0.5 }},
		{"zero slice", func(c *Config) { c.Slices.Both = 0 }},
		{"both exceeds single", func(c *Config) { c.Slices.Both = 0.2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalidStrategy)
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	yamlData := `
meta:
  strategy_id: test_v1
  version: "1.0"
weights:
  market_cap: 0.15
  roe: 0.20
  profitability: 0.20
  growth: 0.15
  fcf_projection: 0.20
  valuation: 0.10
optional_slices:
  both: 0.05
  single: 0.10
`
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test_v1", cfg.Meta.StrategyID)
	assert.Equal(t, 0.20, cfg.Weights.ROE)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	yamlData := `
meta:
  strategy_id: test_v1
  version: "1.0"
  typo_field: true
weights:
  market_cap: 0.15
  roe: 0.20
  profitability: 0.20
  growth: 0.15
  fcf_projection: 0.20
  valuation: 0.10
optional_slices:
  both: 0.05
  single: 0.10
`
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestHash_Deterministic(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	h2, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	other := Default()
	other.Weights.ROE = 0.21
	h3, err := Hash(other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
