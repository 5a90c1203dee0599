package config

import (
	"fmt"

	"stock-manager/core/reconcile"
)

// ReconcileConfig selects the engine's matching policies.
type ReconcileConfig struct {
	// NameMatcher is the receipt name policy (equal_fold, trimmed_fold).
	NameMatcher string `mapstructure:"name_matcher" default:"equal_fold"`
	// LotSelector is the lot selection policy (first, earliest_expiry).
	LotSelector string `mapstructure:"lot_selector" default:"first"`
	// SnapshotTTLSeconds is how long product and lot listings are cached. 0 disables the cache.
	SnapshotTTLSeconds int `mapstructure:"snapshot_ttl_seconds" default:"2"`
}

// EngineOptions translates the configured policies into engine options.
func (c ReconcileConfig) EngineOptions() ([]reconcile.Option, error) {
	var opts []reconcile.Option

	switch c.NameMatcher {
	case "equal_fold", "":
		opts = append(opts, reconcile.WithNameMatcher(reconcile.EqualFoldMatcher))
	case "trimmed_fold":
		opts = append(opts, reconcile.WithNameMatcher(reconcile.TrimmedFoldMatcher))
	default:
		return nil, fmt.Errorf("unknown name matcher: %s", c.NameMatcher)
	}

	switch c.LotSelector {
	case "first", "":
		opts = append(opts, reconcile.WithLotSelector(reconcile.FirstLotSelector))
	case "earliest_expiry":
		opts = append(opts, reconcile.WithLotSelector(reconcile.EarliestExpirySelector))
	default:
		return nil, fmt.Errorf("unknown lot selector: %s", c.LotSelector)
	}

	return opts, nil
}
