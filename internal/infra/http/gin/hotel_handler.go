package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"hotelstay/internal/app/dto"
	hotelsapp "hotelstay/internal/app/handlers/hotels"
	"hotelstay/internal/app/queries"
	domainhotels "hotelstay/internal/domain/hotels"
)

type HotelHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// List serves the catalog: ?q=&area=&price=&amenities=a,b&sort=&featured=&limit=&offset=
func (h HotelHandler) List(c *gin.Context) {
	params, err := parseSearch(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	result, err := queries.Ask[hotelsapp.SearchHotelsQuery, dto.HotelCollection](c.Request.Context(), h.Queries, hotelsapp.SearchHotelsQuery{Params: params})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HotelHandler) Get(c *gin.Context) {
	query := hotelsapp.GetHotelQuery{Slug: c.Param("slug")}
	result, err := queries.Ask[hotelsapp.GetHotelQuery, dto.HotelDetail](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HotelHandler) Areas(c *gin.Context) {
	result, err := queries.Ask[hotelsapp.ListAreasQuery, dto.CatalogFacets](c.Request.Context(), h.Queries, hotelsapp.ListAreasQuery{})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HotelHandler) Amenities(c *gin.Context) {
	result, err := queries.Ask[hotelsapp.ListAmenitiesQuery, dto.CatalogFacets](c.Request.Context(), h.Queries, hotelsapp.ListAmenitiesQuery{})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseSearch(c *gin.Context) (domainhotels.SearchParams, error) {
	band, err := domainhotels.ParsePriceBand(c.Query("price"))
	if err != nil {
		return domainhotels.SearchParams{}, err
	}
	params := domainhotels.SearchParams{
		Text:  c.Query("q"),
		Area:  c.Query("area"),
		Price: band,
		Sort:  domainhotels.SortOrder(strings.ToLower(c.Query("sort"))),
	}
	if raw := c.Query("amenities"); raw != "" {
		params.Amenities = strings.Split(raw, ",")
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return domainhotels.SearchParams{}, fmt.Errorf("invalid featured flag %q", raw)
		}
		params.FeaturedOnly = featured
	}
	if params.Limit, err = intQuery(c, "limit"); err != nil {
		return domainhotels.SearchParams{}, err
	}
	if params.Offset, err = intQuery(c, "offset"); err != nil {
		return domainhotels.SearchParams{}, err
	}
	return params, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

var _ HotelHTTP = HotelHandler{}
