package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	stayapp "hotelstay/internal/app/handlers/stay"
	"hotelstay/internal/app/middleware"
	"hotelstay/internal/app/uow"
	"hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
)

type violationBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error      string          `json:"error"`
	Message    string          `json:"message,omitempty"`
	Violations []violationBody `json:"violations,omitempty"`
}

type errorRule struct {
	target  error
	status  int
	code    string
	message string
}

// Rules that are not validation failures answer with code as the error field.
// Validation rules answer 422 with a single violation.
var errorRules = []errorRule{
	{domainhotels.ErrOccupancyLimit, http.StatusUnprocessableEntity, "occupancy_exceeded", "Too many guests for this room"},
	{domainbooking.ErrGuestNameRequired, http.StatusUnprocessableEntity, "guest_name_required", "Guest name is required"},
	{domainbooking.ErrInvalidEmail, http.StatusUnprocessableEntity, "guest_email_invalid", "A valid email address is required"},
	{domainbooking.ErrInvalidGuests, http.StatusUnprocessableEntity, "guest_count_invalid", "Please select at least 1 guest"},
	{domainbooking.ErrNonPositiveTotal, http.StatusUnprocessableEntity, "total_invalid", "Booking total must be greater than zero"},

	{domainhotels.ErrHotelNotFound, http.StatusNotFound, "hotel_not_found", ""},
	{domainhotels.ErrRoomNotFound, http.StatusNotFound, "room_not_found", ""},
	{domainbooking.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", ""},

	{availability.ErrOverlappingRange, http.StatusConflict, "dates_unavailable", "The room is already booked for some of these nights"},
	{domainbooking.ErrInvalidState, http.StatusConflict, "invalid_state", "The booking can no longer be changed"},
	{middleware.ErrIdempotencyKeyReused, http.StatusConflict, "idempotency_key_reused", ""},
	{uow.ErrConcurrentUpdate, http.StatusConflict, "concurrent_update", "Please retry"},

	{stayapp.ErrHotelRequired, http.StatusBadRequest, "hotel_id_required", ""},
	{stayapp.ErrRoomRequired, http.StatusBadRequest, "room_id_required", ""},
	{domainhotels.ErrInvalidSlug, http.StatusBadRequest, "slug_required", ""},
	{domainhotels.ErrInvalidPriceBand, http.StatusBadRequest, "invalid_price_band", ""},
}

// writeError maps application errors to HTTP responses in one place.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	if invalid, ok := stay.AsInvalidRequest(err); ok {
		body := errorBody{Error: "invalid_request"}
		for _, v := range invalid.Violations {
			body.Violations = append(body.Violations, violationBody{Code: string(v), Message: v.Message()})
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}
	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		if rule.status == http.StatusUnprocessableEntity {
			c.JSON(rule.status, errorBody{
				Error:      "invalid_request",
				Violations: []violationBody{{Code: rule.code, Message: rule.message}},
			})
			return
		}
		c.JSON(rule.status, errorBody{Error: rule.code, Message: rule.message})
		return
	}
	if logger != nil {
		logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(http.StatusInternalServerError, errorBody{Error: "internal"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})
}
