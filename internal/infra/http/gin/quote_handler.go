package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotelstay/internal/app/dto"
	stayapp "hotelstay/internal/app/handlers/stay"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/domain/shared/daterange"
)

type QuoteHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

type quoteRequest struct {
	HotelID        string              `json:"hotel_id"`
	RoomID         string              `json:"room_id"`
	CheckIn        string              `json:"check_in"`
	CheckOut       string              `json:"check_out"`
	Guests         int                 `json:"guests"`
	ServiceFeeFlat decimal.NullDecimal `json:"service_fee_flat"`
	TaxRatePercent decimal.NullDecimal `json:"tax_rate_percent"`
}

func (h QuoteHandler) Create(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	query := stayapp.QuoteStayQuery{
		HotelID:        req.HotelID,
		RoomID:         req.RoomID,
		CheckIn:        optionalDate(req.CheckIn),
		CheckOut:       optionalDate(req.CheckOut),
		Guests:         req.Guests,
		ServiceFeeFlat: req.ServiceFeeFlat,
		TaxRatePercent: req.TaxRatePercent,
	}
	result, err := queries.Ask[stayapp.QuoteStayQuery, dto.StayQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// optionalDate treats blank and unparseable input as "not supplied" so the
// calculator reports it as a missing date.
func optionalDate(raw string) time.Time {
	t, err := daterange.ParseDate(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ QuoteHTTP = QuoteHandler{}
