package stay

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GuestPolicy decides how the guest count scales the nightly price.
type GuestPolicy interface {
	Name() string
	Multiplier(guests int) decimal.Decimal
}

// FlatPolicy prices by nights only.
type FlatPolicy struct{}

func (FlatPolicy) Name() string { return "flat" }

func (FlatPolicy) Multiplier(int) decimal.Decimal { return decimal.NewFromInt(1) }

// PerGuestPolicy charges the nightly rate once per guest.
type PerGuestPolicy struct{}

func (PerGuestPolicy) Name() string { return "per_guest" }

func (PerGuestPolicy) Multiplier(guests int) decimal.Decimal {
	if guests < 1 {
		guests = 1
	}
	return decimal.NewFromInt(int64(guests))
}

// PairedOccupancyPolicy is the hotel detail page rule: ceil(1 + ceil(g/2)/2).
// One or two guests pay 2x, three or four 2x, five or six 3x and so on.
type PairedOccupancyPolicy struct{}

func (PairedOccupancyPolicy) Name() string { return "paired" }

func (PairedOccupancyPolicy) Multiplier(guests int) decimal.Decimal {
	if guests < 1 {
		guests = 1
	}
	pairs := (guests + 1) / 2
	// ceil(1 + pairs/2) == 1 + ceil(pairs/2)
	return decimal.NewFromInt(int64(1 + (pairs+1)/2))
}

// ParseGuestPolicy maps a config value to a policy; blank means flat.
func ParseGuestPolicy(raw string) (GuestPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "flat":
		return FlatPolicy{}, nil
	case "per_guest", "per-guest":
		return PerGuestPolicy{}, nil
	case "paired":
		return PairedOccupancyPolicy{}, nil
	default:
		return nil, fmt.Errorf("stay: unknown guest policy %q", raw)
	}
}
