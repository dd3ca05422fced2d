package hotels

import (
	"context"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainhotels "hotelstay/internal/domain/hotels"
)

const SearchHotelsKey = "hotels.search"

type SearchHotelsQuery struct {
	Params domainhotels.SearchParams
}

func (q SearchHotelsQuery) Key() string { return SearchHotelsKey }

type SearchHotelsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchHotelsHandler) Handle(ctx context.Context, q SearchHotelsQuery) (dto.HotelCollection, error) {
	var out dto.HotelCollection
	err := uow.Run(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		all, err := unit.Hotels().List(ctx)
		if err != nil {
			return err
		}
		params := q.Params.Normalized()
		res := domainhotels.Search(all, params)
		items := make([]dto.HotelSummary, 0, len(res.Items))
		for _, h := range res.Items {
			items = append(items, dto.MapHotelSummary(h))
		}
		out = dto.HotelCollection{Items: items, Total: res.Total, Limit: params.Limit, Offset: params.Offset}
		return nil
	})
	return out, err
}

var _ queries.Handler[SearchHotelsQuery, dto.HotelCollection] = (*SearchHotelsHandler)(nil)
