package memory

import (
	"context"
	"errors"
	"sync"

	"hotelstay/internal/app/uow"
	domainavailability "hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
// Writing units run one at a time; there is no rollback of applied writes,
// so handlers must finish their checks before saving.
type Factory struct {
	HotelsRepo       domainhotels.Repository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository

	writers sync.Mutex
}

func NewFactory() *Factory {
	return &Factory{
		HotelsRepo:       NewHotelRepository(),
		AvailabilityRepo: NewAvailabilityRepository(),
		BookingRepo:      NewBookingRepository(),
	}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.HotelsRepo == nil || f.AvailabilityRepo == nil || f.BookingRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	unit := &Unit{
		hotels:       f.HotelsRepo,
		availability: f.AvailabilityRepo,
		bookings:     f.BookingRepo,
	}
	if !opts.ReadOnly {
		f.writers.Lock()
		unit.release = f.writers.Unlock
	}
	return unit, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	hotels       domainhotels.Repository
	availability domainavailability.Repository
	bookings     domainbooking.Repository

	once    sync.Once
	release func()
}

func (u *Unit) Hotels() domainhotels.Repository {
	return u.hotels
}

func (u *Unit) Availability() domainavailability.Repository {
	return u.availability
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Commit(ctx context.Context) error {
	u.finish()
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	u.finish()
	return nil
}

func (u *Unit) finish() {
	u.once.Do(func() {
		if u.release != nil {
			u.release()
		}
	})
}

var _ uow.UoWFactory = (*Factory)(nil)
