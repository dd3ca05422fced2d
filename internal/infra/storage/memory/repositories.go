package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"hotelstay/internal/app/uow"
	domainavailability "hotelstay/internal/domain/availability"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/shared/events"
)

// HotelRepository keeps the hotel catalog in memory.
type HotelRepository struct {
	mu    sync.RWMutex
	items map[domainhotels.HotelID]*domainhotels.Hotel
	slugs map[string]domainhotels.HotelID
}

func NewHotelRepository() *HotelRepository {
	return &HotelRepository{
		items: make(map[domainhotels.HotelID]*domainhotels.Hotel),
		slugs: make(map[string]domainhotels.HotelID),
	}
}

func (r *HotelRepository) ByID(ctx context.Context, id domainhotels.HotelID) (*domainhotels.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hotel, ok := r.items[id]
	if !ok {
		return nil, domainhotels.ErrHotelNotFound
	}
	return hotel.Copy(), nil
}

func (r *HotelRepository) BySlug(ctx context.Context, slug string) (*domainhotels.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.slugs[strings.ToLower(slug)]
	if !ok {
		return nil, domainhotels.ErrHotelNotFound
	}
	return r.items[id].Copy(), nil
}

// List returns every hotel ordered by id; filtering happens in the domain.
func (r *HotelRepository) List(ctx context.Context) ([]*domainhotels.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainhotels.Hotel, 0, len(r.items))
	for _, h := range r.items {
		out = append(out, h.Copy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *HotelRepository) Save(ctx context.Context, hotel *domainhotels.Hotel) error {
	if err := hotel.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.items[hotel.ID]; ok {
		delete(r.slugs, strings.ToLower(prev.Slug))
	}
	r.items[hotel.ID] = hotel.Copy()
	r.slugs[strings.ToLower(hotel.Slug)] = hotel.ID
	return nil
}

// AvailabilityRepository keeps room calendars in memory.
type AvailabilityRepository struct {
	mu        sync.RWMutex
	calendars map[domainavailability.RoomKey]*domainavailability.Calendar
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{
		calendars: make(map[domainavailability.RoomKey]*domainavailability.Calendar),
	}
}

func (r *AvailabilityRepository) Calendar(ctx context.Context, key domainavailability.RoomKey) (*domainavailability.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cal, ok := r.calendars[key]
	if !ok {
		return nil, domainavailability.ErrCalendarNotFound
	}
	return cal.Copy(), nil
}

func (r *AvailabilityRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.calendars[calendar.Room]; ok && current.Version != calendar.Version {
		return uow.ErrConcurrentUpdate
	}
	calendar.Version++
	r.calendars[calendar.Room] = calendar.Copy()
	return nil
}

// BookingRepository keeps bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) Save(ctx context.Context, booking *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[booking.ID]; ok && current.Version != booking.Version {
		return uow.ErrConcurrentUpdate
	}
	booking.Version++
	r.items[booking.ID] = copyBooking(booking)
	return nil
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]*domainbooking.Booking, error) {
	email = domainbooking.NormalizeEmail(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domainbooking.Booking{}
	for _, b := range r.items {
		if domainbooking.NormalizeEmail(b.Guest.Email) == email {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func copyBooking(b *domainbooking.Booking) *domainbooking.Booking {
	clone := *b
	clone.EventRecorder = events.EventRecorder{}
	return &clone
}

var (
	_ domainhotels.Repository       = (*HotelRepository)(nil)
	_ domainavailability.Repository = (*AvailabilityRepository)(nil)
	_ domainbooking.Repository      = (*BookingRepository)(nil)
)
