package stay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/policies"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainhotels "hotelstay/internal/domain/hotels"
	domainstay "hotelstay/internal/domain/stay"
)

const QuoteStayKey = "stay.quote"

var (
	ErrHotelRequired   = errors.New("stay: hotel id required")
	ErrRoomRequired    = errors.New("stay: room id required")
	ErrPricingRequired = errors.New("stay: pricing port required")
)

type QuoteStayQuery struct {
	HotelID        string
	RoomID         string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	ServiceFeeFlat decimal.NullDecimal
	TaxRatePercent decimal.NullDecimal
}

func (q QuoteStayQuery) Key() string { return QuoteStayKey }

func (q QuoteStayQuery) Validate() error {
	if strings.TrimSpace(q.HotelID) == "" {
		return ErrHotelRequired
	}
	if strings.TrimSpace(q.RoomID) == "" {
		return ErrRoomRequired
	}
	return nil
}

func (q QuoteStayQuery) Selection() Selection {
	return Selection{
		HotelID: domainhotels.HotelID(strings.TrimSpace(q.HotelID)),
		RoomID:  domainhotels.RoomID(strings.TrimSpace(q.RoomID)),
		Stay: policies.StayInput{
			CheckIn:        q.CheckIn,
			CheckOut:       q.CheckOut,
			Guests:         q.Guests,
			ServiceFeeFlat: q.ServiceFeeFlat,
			TaxRatePercent: q.TaxRatePercent,
		},
	}
}

type QuoteStayHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
}

func (h *QuoteStayHandler) Handle(ctx context.Context, q QuoteStayQuery) (dto.StayQuote, error) {
	var out dto.StayQuote
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		sel := q.Selection()
		_, quote, err := PriceRoom(ctx, unit.Hotels(), h.Pricing, sel)
		if err != nil {
			return err
		}
		out = dto.MapQuote(string(sel.HotelID), string(sel.RoomID), quote)
		return nil
	})
	return out, err
}

// Selection names the room being priced and the stay the guest picked.
type Selection struct {
	HotelID domainhotels.HotelID
	RoomID  domainhotels.RoomID
	Stay    policies.StayInput
}

// PriceRoom loads a public hotel and quotes one of its rooms. Unapproved
// hotels are reported as not found. Request violations take precedence over
// the occupancy check so that callers see every form error at once.
func PriceRoom(ctx context.Context, repo domainhotels.Repository, pricing policies.PricingPort, sel Selection) (*domainhotels.Hotel, domainstay.Quote, error) {
	if pricing == nil {
		return nil, domainstay.Quote{}, ErrPricingRequired
	}
	hotel, err := repo.ByID(ctx, sel.HotelID)
	if err != nil {
		return nil, domainstay.Quote{}, err
	}
	if !hotel.Public() {
		return nil, domainstay.Quote{}, domainhotels.ErrHotelNotFound
	}
	room, err := hotel.Room(sel.RoomID)
	if err != nil {
		return nil, domainstay.Quote{}, err
	}
	quote, err := pricing.Quote(ctx, hotel, room, sel.Stay)
	if err != nil {
		return nil, domainstay.Quote{}, err
	}
	if !room.Accommodates(sel.Stay.Guests) {
		return nil, domainstay.Quote{}, fmt.Errorf("%w: room %s sleeps %d", domainhotels.ErrOccupancyLimit, room.ID, room.MaxOccupancy)
	}
	return hotel, quote, nil
}

var _ queries.Handler[QuoteStayQuery, dto.StayQuote] = (*QuoteStayHandler)(nil)
