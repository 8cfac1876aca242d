// Package model defines the domain types shared by the estimator, the CLI,
// the TUI, and the HTTP service.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Tier selects how a price range collapses into a single unit price.
type Tier string

const (
	TierLowest  Tier = "lowest"
	TierBlended Tier = "blended"
	TierHighest Tier = "highest"
	TierCustom  Tier = "custom"
)

// Tiers lists every tier in display order.
var Tiers = []Tier{TierLowest, TierBlended, TierHighest, TierCustom}

// RangeTiers are the tiers that derive a price from the range alone.
var RangeTiers = []Tier{TierLowest, TierBlended, TierHighest}

// ErrUnknownTier is returned by ParseTier for unrecognized names.
var ErrUnknownTier = errors.New("unknown tier")

// ParseTier accepts tier names and the Good/Better/Best labels.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowest", "good", "low", "min":
		return TierLowest, nil
	case "blended", "better", "mid":
		return TierBlended, nil
	case "highest", "best", "high", "max":
		return TierHighest, nil
	case "custom":
		return TierCustom, nil
	}
	return "", fmt.Errorf("%w %q (want lowest, blended, highest or custom)", ErrUnknownTier, s)
}

// Label returns the customer-facing tier name.
func (t Tier) Label() string {
	switch t {
	case TierLowest:
		return "Good"
	case TierBlended:
		return "Better"
	case TierHighest:
		return "Best"
	case TierCustom:
		return "Custom"
	}
	return string(t)
}

// Next cycles through Tiers.
func (t Tier) Next() Tier {
	for i, tt := range Tiers {
		if tt == t {
			return Tiers[(i+1)%len(Tiers)]
		}
	}
	return TierBlended
}
