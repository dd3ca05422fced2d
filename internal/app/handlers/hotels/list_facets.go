package hotels

import (
	"context"

	"hotelstay/internal/app/dto"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
	domainhotels "hotelstay/internal/domain/hotels"
)

const (
	ListAreasKey     = "hotels.areas"
	ListAmenitiesKey = "hotels.amenities"
)

type ListAreasQuery struct{}

func (ListAreasQuery) Key() string { return ListAreasKey }

type ListAmenitiesQuery struct{}

func (ListAmenitiesQuery) Key() string { return ListAmenitiesKey }

type ListAreasHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListAreasHandler) Handle(ctx context.Context, _ ListAreasQuery) (dto.CatalogFacets, error) {
	return listFacets(ctx, h.UoWFactory, domainhotels.Areas)
}

type ListAmenitiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListAmenitiesHandler) Handle(ctx context.Context, _ ListAmenitiesQuery) (dto.CatalogFacets, error) {
	return listFacets(ctx, h.UoWFactory, domainhotels.Amenities)
}

func listFacets(ctx context.Context, factory uow.UoWFactory, extract func([]*domainhotels.Hotel) []string) (dto.CatalogFacets, error) {
	var out dto.CatalogFacets
	err := uow.Run(ctx, factory, uow.TxOptions{ReadOnly: true}, func(ctx context.Context, unit uow.UnitOfWork) error {
		all, err := unit.Hotels().List(ctx)
		if err != nil {
			return err
		}
		out = dto.CatalogFacets{Items: extract(all)}
		return nil
	})
	return out, err
}

var (
	_ queries.Handler[ListAreasQuery, dto.CatalogFacets]     = (*ListAreasHandler)(nil)
	_ queries.Handler[ListAmenitiesQuery, dto.CatalogFacets] = (*ListAmenitiesHandler)(nil)
)
