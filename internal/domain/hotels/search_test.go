package hotels

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []*Hotel {
	return []*Hotel{
		{ID: "h1", Slug: "sea-view", Name: "Sea View", ShortDescription: "Beachfront resort with pool", Area: "Calangute", Address: "Beach Road", StartingPrice: decimal.NewFromInt(4500), AverageRating: 4.6, TotalReviews: 40, Status: StatusApproved, Featured: true, Amenities: []string{"Pool", "WiFi", "Parking"}},
		{ID: "h2", Slug: "palm-grove", Name: "Palm Grove", ShortDescription: "Garden rooms near the market", Area: "Baga", Address: "Tito's Lane", StartingPrice: decimal.NewFromInt(2500), AverageRating: 4.1, TotalReviews: 210, Status: StatusApproved, Amenities: []string{"WiFi"}},
		{ID: "h3", Slug: "fort-stay", Name: "Fort Stay", ShortDescription: "Heritage home in the old quarter", Area: "Panjim", Address: "Near Calangute Junction", StartingPrice: decimal.NewFromInt(12000), AverageRating: 4.8, TotalReviews: 12, Status: StatusApproved, Amenities: []string{"wifi", "Breakfast"}},
		{ID: "h4", Slug: "hidden", Name: "Hidden Gem", ShortDescription: "Beach hut", Area: "Morjim", StartingPrice: decimal.NewFromInt(1000), AverageRating: 5, Status: StatusPending, Amenities: []string{"Spa"}},
		{ID: "h5", Slug: "budget-inn", Name: "Budget Inn", Area: "Baga", StartingPrice: decimal.NewFromInt(2500), AverageRating: 3.2, TotalReviews: 95, Status: StatusApproved},
	}
}

func ids(res SearchResult) []HotelID {
	out := make([]HotelID, 0, len(res.Items))
	for _, h := range res.Items {
		out = append(out, h.ID)
	}
	return out
}

func TestSearchDefaultsToRatingAndSkipsUnapproved(t *testing.T) {
	res := Search(fixture(), SearchParams{})
	assert.Equal(t, []HotelID{"h3", "h1", "h2", "h5"}, ids(res))
	assert.Equal(t, 4, res.Total)
}

func TestSearchTextMatchesNameAndShortDescription(t *testing.T) {
	res := Search(fixture(), SearchParams{Text: "beachfront"})
	assert.Equal(t, []HotelID{"h1"}, ids(res))

	res = Search(fixture(), SearchParams{Text: "  PALM "})
	assert.Equal(t, []HotelID{"h2"}, ids(res))

	// area and address have their own filter, not the free text one
	res = Search(fixture(), SearchParams{Text: "calangute"})
	assert.Empty(t, res.Items)
}

func TestSearchAreaAndPriceBand(t *testing.T) {
	band, err := ParsePriceBand("2000-5000")
	require.NoError(t, err)

	res := Search(fixture(), SearchParams{Area: "baga", Price: band, Sort: SortPriceLow})
	// equal prices fall back to name order
	assert.Equal(t, []HotelID{"h5", "h2"}, ids(res))

	band, err = ParsePriceBand("10000+")
	require.NoError(t, err)
	res = Search(fixture(), SearchParams{Price: band})
	assert.Equal(t, []HotelID{"h3"}, ids(res))
}

func TestSearchSortPriceHighAndName(t *testing.T) {
	res := Search(fixture(), SearchParams{Sort: SortPriceHigh})
	assert.Equal(t, []HotelID{"h3", "h1", "h5", "h2"}, ids(res))

	res = Search(fixture(), SearchParams{Sort: SortName})
	assert.Equal(t, []HotelID{"h5", "h3", "h2", "h1"}, ids(res))
}

func TestSearchSortReviews(t *testing.T) {
	assert.Equal(t, SortReviews, SearchParams{Sort: SortReviews}.Normalized().Sort)

	res := Search(fixture(), SearchParams{Sort: SortReviews})
	assert.Equal(t, []HotelID{"h2", "h5", "h1", "h3"}, ids(res))
}

func TestSearchAmenitiesRequiresAll(t *testing.T) {
	res := Search(fixture(), SearchParams{Amenities: []string{"WIFI"}})
	assert.Equal(t, []HotelID{"h3", "h1", "h2"}, ids(res))

	res = Search(fixture(), SearchParams{Amenities: []string{"wifi", " pool "}})
	assert.Equal(t, []HotelID{"h1"}, ids(res))

	res = Search(fixture(), SearchParams{Amenities: []string{"Spa"}})
	assert.Empty(t, res.Items, "pending hotels stay hidden")

	res = Search(fixture(), SearchParams{Amenities: []string{"", "  "}})
	assert.Equal(t, 4, res.Total)
}

func TestAreasAndAmenitiesOfPublicHotels(t *testing.T) {
	assert.Equal(t, []string{"Baga", "Calangute", "Panjim"}, Areas(fixture()))
	assert.Equal(t, []string{"Breakfast", "Parking", "Pool", "WiFi"}, Amenities(fixture()))
	assert.Equal(t, []string{}, Areas(nil))
}

func TestSearchFeaturedAndPaging(t *testing.T) {
	res := Search(fixture(), SearchParams{FeaturedOnly: true})
	assert.Equal(t, []HotelID{"h1"}, ids(res))

	res = Search(fixture(), SearchParams{Limit: 2, Offset: 1})
	assert.Equal(t, []HotelID{"h1", "h2"}, ids(res))
	assert.Equal(t, 4, res.Total)

	res = Search(fixture(), SearchParams{Offset: 10})
	assert.Empty(t, res.Items)
	assert.Equal(t, 4, res.Total)
}

func TestParsePriceBand(t *testing.T) {
	band, err := ParsePriceBand("all")
	require.NoError(t, err)
	assert.True(t, band.Any)

	for _, raw := range []string{"cheap", "5000-2000", "-", "abc+"} {
		_, err := ParsePriceBand(raw)
		assert.ErrorIs(t, err, ErrInvalidPriceBand, raw)
	}

	band, err = ParsePriceBand("1000-2000")
	require.NoError(t, err)
	assert.True(t, band.Includes(decimal.NewFromInt(1000)))
	assert.True(t, band.Includes(decimal.NewFromInt(2000)))
	assert.False(t, band.Includes(decimal.NewFromInt(2001)))
}

func TestHotelValidateDerivesStartingPrice(t *testing.T) {
	h := &Hotel{ID: "h9", Slug: "new", Name: "New", Rooms: []Room{
		{ID: "deluxe", BasePrice: decimal.NewFromInt(3200)},
		{ID: "standard", BasePrice: decimal.NewFromInt(1800)},
	}}
	require.NoError(t, h.Validate())
	assert.Equal(t, StatusPending, h.Status)
	assert.True(t, h.StartingPrice.Equal(decimal.NewFromInt(1800)))

	h.Rooms = append(h.Rooms, Room{ID: "standard"})
	assert.ErrorIs(t, h.Validate(), ErrDuplicateRoomID)

	assert.ErrorIs(t, (&Hotel{ID: "x", Name: "X"}).Validate(), ErrInvalidSlug)
}

func TestHotelRoomAndFeatured(t *testing.T) {
	h := fixture()[3]
	assert.ErrorIs(t, h.SetFeatured(true), ErrHotelNotPublic)

	h.Status = StatusApproved
	require.NoError(t, h.SetFeatured(true))
	assert.True(t, h.Featured)

	h.Rooms = []Room{{ID: "r1", MaxOccupancy: 2}}
	room, err := h.Room("r1")
	require.NoError(t, err)
	assert.True(t, room.Accommodates(2))
	assert.False(t, room.Accommodates(3))

	_, err = h.Room("missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
