package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RoundingMode string

const (
	RoundHalfUp   RoundingMode = "half_up"
	RoundHalfEven RoundingMode = "half_even"
	RoundDown     RoundingMode = "down"
	RoundUp       RoundingMode = "up"
)

// ParseRoundingMode accepts the config spelling; empty input yields half-up.
func ParseRoundingMode(raw string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoundHalfUp:
		return RoundHalfUp, nil
	case RoundHalfEven:
		return RoundHalfEven, nil
	case RoundDown:
		return RoundDown, nil
	case RoundUp:
		return RoundUp, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRounding, raw)
	}
}

// apply rounds toward the mode. Down and up are toward and away from zero.
func (r RoundingMode) apply(d decimal.Decimal, places int32) decimal.Decimal {
	switch r {
	case RoundHalfEven:
		return d.RoundBank(places)
	case RoundDown:
		return d.RoundDown(places)
	case RoundUp:
		return d.RoundUp(places)
	default:
		// decimal.Round is half away from zero, which is half-up for the
		// non-negative amounts priced here.
		return d.Round(places)
	}
}
