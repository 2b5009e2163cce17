package strategyconfig

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidStrategy is returned for weight sets that cannot normalize.
var ErrInvalidStrategy = errors.New("invalid strategy config")

// Validate checks weight ranges and the base-sum invariant.
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return fmt.Errorf("%w: meta.strategy_id is required", ErrInvalidStrategy)
	}

	for name, w := range map[string]float64{
		"market_cap":     cfg.Weights.MarketCap,
		"roe":            cfg.Weights.ROE,
		"profitability":  cfg.Weights.Profitability,
		"growth":         cfg.Weights.Growth,
		"fcf_projection": cfg.Weights.FCFProjection,
		"valuation":      cfg.Weights.Valuation,
	} {
		if w <= 0 {
			return fmt.Errorf("%w: weight %s must be > 0, got %v", ErrInvalidStrategy, name, w)
		}
	}

	// Base weights must form a convex combination before slices are added.
	if math.Abs(cfg.Weights.Sum()-1.0) > 0.01 {
		return fmt.Errorf("%w: base weights must sum to 1.0, got %.4f", ErrInvalidStrategy, cfg.Weights.Sum())
	}

	if cfg.Slices.Both <= 0 || cfg.Slices.Single <= 0 {
		return fmt.Errorf("%w: optional slices must be > 0", ErrInvalidStrategy)
	}
	if cfg.Slices.Both > cfg.Slices.Single {
		return fmt.Errorf("%w: slice for both factors must not exceed single-factor slice", ErrInvalidStrategy)
	}

	return nil
}
