package hotels

import (
	"context"
	"strings"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainhotels "hotelstay/internal/domain/hotels"
)

const GetHotelKey = "hotels.get"

type GetHotelQuery struct {
	Slug string
}

func (q GetHotelQuery) Key() string { return GetHotelKey }

func (q GetHotelQuery) Validate() error {
	if strings.TrimSpace(q.Slug) == "" {
		return domainhotels.ErrInvalidSlug
	}
	return nil
}

type GetHotelHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetHotelHandler) Handle(ctx context.Context, q GetHotelQuery) (dto.HotelDetail, error) {
	var out dto.HotelDetail
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		hotel, err := unit.Hotels().BySlug(ctx, strings.TrimSpace(q.Slug))
		if err != nil {
			return err
		}
		if !hotel.Public() {
			return domainhotels.ErrHotelNotFound
		}
		out = dto.MapHotelDetail(hotel)
		return nil
	})
	return out, err
}

var _ queries.Handler[GetHotelQuery, dto.HotelDetail] = (*GetHotelHandler)(nil)
