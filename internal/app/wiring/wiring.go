// Package wiring registers every handler on the command and query buses and
// wraps them in the middleware pipeline.
package wiring

import (
	"log/slog"
	"time"

	"hotelstay/internal/app/commands"
	bookingapp "hotelstay/internal/app/handlers/booking"
	hotelsapp "hotelstay/internal/app/handlers/hotels"
	stayapp "hotelstay/internal/app/handlers/stay"
	"hotelstay/internal/app/middleware"
	"hotelstay/internal/app/outbox"
	"hotelstay/internal/app/policies"
	"hotelstay/internal/app/queries"
	"hotelstay/internal/app/uow"
)

type Deps struct {
	UoW            uow.UoWFactory
	Pricing        policies.PricingPort
	Outbox         outbox.Outbox
	Encoder        outbox.EventEncoder
	Idempotency    middleware.IdempotencyStore
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
	Clock          func() time.Time
	NewID          func() string
}

type Buses struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func Build(d Deps) Buses {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.CreateBookingKey, &bookingapp.CreateBookingHandler{
		UoWFactory: d.UoW,
		Pricing:    d.Pricing,
		Outbox:     d.Outbox,
		Encoder:    d.Encoder,
		Clock:      clock,
		NewID:      d.NewID,
	})
	commands.RegisterHandler(commandBus, bookingapp.CancelBookingKey, &bookingapp.CancelBookingHandler{
		UoWFactory: d.UoW,
		Outbox:     d.Outbox,
		Encoder:    d.Encoder,
		Clock:      clock,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, stayapp.QuoteStayKey, &stayapp.QuoteStayHandler{UoWFactory: d.UoW, Pricing: d.Pricing})
	queries.RegisterHandler(queryBus, hotelsapp.SearchHotelsKey, &hotelsapp.SearchHotelsHandler{UoWFactory: d.UoW})
	queries.RegisterHandler(queryBus, hotelsapp.GetHotelKey, &hotelsapp.GetHotelHandler{UoWFactory: d.UoW})
	queries.RegisterHandler(queryBus, hotelsapp.ListAreasKey, &hotelsapp.ListAreasHandler{UoWFactory: d.UoW})
	queries.RegisterHandler(queryBus, hotelsapp.ListAmenitiesKey, &hotelsapp.ListAmenitiesHandler{UoWFactory: d.UoW})
	queries.RegisterHandler(queryBus, bookingapp.GetBookingKey, &bookingapp.GetBookingHandler{UoWFactory: d.UoW})
	queries.RegisterHandler(queryBus, bookingapp.ListGuestBookingsKey, &bookingapp.ListGuestBookingsHandler{UoWFactory: d.UoW, Logger: d.Logger})

	commandPipeline := middleware.CommandPipeline{
		middleware.Logging(d.Logger),
		middleware.Validation(),
	}.
		With(d.Idempotency != nil, func() middleware.CommandMiddleware {
			return middleware.Idempotency(d.Idempotency, middleware.IdempotencyOptions{TTL: d.IdempotencyTTL, Now: clock})
		}).
		// flush runs after the transaction below has committed
		With(d.Outbox != nil, func() middleware.CommandMiddleware { return middleware.OutboxFlush(d.Outbox) })
	commandPipeline = append(commandPipeline, middleware.Transaction(d.UoW, nil))

	queryPipeline := middleware.QueryPipeline{
		middleware.QueryLogging(d.Logger),
		middleware.QueryValidation(),
	}

	return Buses{
		Commands: commandPipeline.Wrap(commandBus),
		Queries:  queryPipeline.Wrap(queryBus),
	}
}
