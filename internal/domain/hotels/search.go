package hotels

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPriceBand = errors.New("hotels: invalid price band")

type SortOrder string

const (
	SortRating    SortOrder = "rating"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
	SortReviews   SortOrder = "reviews"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// PriceBand bounds StartingPrice. A zero Max means "and above".
type PriceBand struct {
	Min decimal.Decimal
	Max decimal.Decimal
	Any bool
}

// ParsePriceBand accepts "all", "min-max" and "min+", e.g. "2000-5000" or "10000+".
func ParsePriceBand(raw string) (PriceBand, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return PriceBand{Any: true}, nil
	}
	if strings.HasSuffix(raw, "+") {
		min, err := decimal.NewFromString(strings.TrimSuffix(raw, "+"))
		if err != nil || min.IsNegative() {
			return PriceBand{}, ErrInvalidPriceBand
		}
		return PriceBand{Min: min}, nil
	}
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return PriceBand{}, ErrInvalidPriceBand
	}
	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return PriceBand{}, ErrInvalidPriceBand
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return PriceBand{}, ErrInvalidPriceBand
	}
	if min.IsNegative() || max.LessThan(min) {
		return PriceBand{}, ErrInvalidPriceBand
	}
	return PriceBand{Min: min, Max: max}, nil
}

func (b PriceBand) Includes(price decimal.Decimal) bool {
	if b.Any {
		return true
	}
	if price.LessThan(b.Min) {
		return false
	}
	return b.Max.IsZero() || !price.GreaterThan(b.Max)
}

type SearchParams struct {
	Text         string
	Area         string
	Price        PriceBand
	Amenities    []string
	Sort         SortOrder
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// Normalized applies defaults and clamps paging.
func (p SearchParams) Normalized() SearchParams {
	out := p
	out.Text = strings.TrimSpace(p.Text)
	out.Area = strings.TrimSpace(p.Area)
	if strings.EqualFold(out.Area, "all") {
		out.Area = ""
	}
	switch p.Sort {
	case SortPriceLow, SortPriceHigh, SortName, SortReviews:
	default:
		out.Sort = SortRating
	}
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	out.Amenities = nil
	for _, a := range p.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			out.Amenities = append(out.Amenities, a)
		}
	}
	if p.Price == (PriceBand{}) {
		out.Price = PriceBand{Any: true}
	}
	return out
}

type SearchResult struct {
	Items []*Hotel
	Total int
}

// Search filters and orders an in-memory hotel list. Only approved hotels are
// returned. Text matches the name or the short description. The input slice is
// not modified.
func Search(all []*Hotel, params SearchParams) SearchResult {
	opts := params.Normalized()
	text := strings.ToLower(opts.Text)

	matches := make([]*Hotel, 0, len(all))
	for _, h := range all {
		if h == nil || !h.Public() {
			continue
		}
		if opts.FeaturedOnly && !h.Featured {
			continue
		}
		if opts.Area != "" && !strings.EqualFold(h.Area, opts.Area) {
			continue
		}
		if text != "" && !matchesText(h, text) {
			continue
		}
		if !opts.Price.Includes(h.StartingPrice) {
			continue
		}
		if !h.HasAmenities(opts.Amenities) {
			continue
		}
		matches = append(matches, h)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch opts.Sort {
		case SortPriceLow:
			if !a.StartingPrice.Equal(b.StartingPrice) {
				return a.StartingPrice.LessThan(b.StartingPrice)
			}
		case SortPriceHigh:
			if !a.StartingPrice.Equal(b.StartingPrice) {
				return a.StartingPrice.GreaterThan(b.StartingPrice)
			}
		case SortRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		case SortReviews:
			if a.TotalReviews != b.TotalReviews {
				return a.TotalReviews > b.TotalReviews
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	total := len(matches)
	if opts.Offset >= total {
		return SearchResult{Items: []*Hotel{}, Total: total}
	}
	end := opts.Offset + opts.Limit
	if end > total {
		end = total
	}
	return SearchResult{Items: matches[opts.Offset:end], Total: total}
}

func matchesText(h *Hotel, needle string) bool {
	return strings.Contains(strings.ToLower(h.Name), needle) ||
		strings.Contains(strings.ToLower(h.ShortDescription), needle)
}

// Areas lists the distinct areas of approved hotels in alphabetical order.
func Areas(all []*Hotel) []string {
	return distinct(all, func(h *Hotel) []string { return []string{h.Area} })
}

// Amenities lists the distinct amenities offered by approved hotels.
func Amenities(all []*Hotel) []string {
	return distinct(all, func(h *Hotel) []string { return h.Amenities })
}

func distinct(all []*Hotel, values func(*Hotel) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, h := range all {
		if h == nil || !h.Public() {
			continue
		}
		for _, v := range values(h) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}
