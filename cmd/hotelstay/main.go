package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelstay/internal/app/middleware"
	appoutbox "hotelstay/internal/app/outbox"
	"hotelstay/internal/app/uow"
	"hotelstay/internal/app/wiring"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
	"hotelstay/internal/infra/broker/kafka"
	"hotelstay/internal/infra/config"
	mongostore "hotelstay/internal/infra/db/mongo"
	ginserver "hotelstay/internal/infra/http/gin"
	"hotelstay/internal/infra/obs"
	"hotelstay/internal/infra/outbox"
	"hotelstay/internal/infra/pricing"
	"hotelstay/internal/infra/storage/memory"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cannot read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: app.ready}, app.handlers)

	for _, job := range app.background {
		go job(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers   ginserver.Handlers
	ready      func(ctx context.Context) error
	background []func(ctx context.Context)
	closers    []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{ready: func(context.Context) error { return nil }}

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, "hotelstay")
		if err != nil {
			return nil, err
		}
		producer = p
		app.closers = append(app.closers, func() { _ = p.Close() })
	}
	envelope := outbox.Envelope{TopicPrefix: cfg.KafkaTopicPrefix}

	var (
		factory     uow.UoWFactory
		box         appoutbox.Outbox
		idempotency middleware.IdempotencyStore
		hotelsRepo  domainhotels.Repository
	)
	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = client.Close(context.Background()) })
		f := mongostore.NewFactory(client.DB)
		store := outbox.NewStore(client.DB)
		factory, box, hotelsRepo = f, store, f.HotelsRepo
		idempotency = mongostore.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		app.ready = client.Ping
		if producer != nil {
			worker := &outbox.Worker{
				Store:    store,
				Producer: producer,
				Envelope: envelope,
				Interval: cfg.OutboxPollInterval,
				Backoff:  cfg.RetryBackoff,
				Logger:   logger,
			}
			app.background = append(app.background, func(ctx context.Context) {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			})
		} else {
			logger.Warn("KAFKA_BROKERS empty, outbox events stay in mongo")
		}
	default:
		f := memory.NewFactory()
		var publisher memory.Publisher = outbox.LogPublisher{Logger: logger}
		if producer != nil {
			publisher = outbox.RecordPublisher{Producer: producer, Envelope: envelope}
		}
		store := memory.NewIdempotencyStore()
		factory, box, idempotency, hotelsRepo = f, memory.NewOutbox(publisher), store, f.HotelsRepo
		if cfg.IdempotencyTTL > 0 {
			app.background = append(app.background, func(ctx context.Context) {
				purgeIdempotency(ctx, store, cfg.IdempotencyTTL, logger)
			})
		}
	}

	if err := loadHotelFixtures(ctx, hotelsRepo, fixturesPath(cfg.HotelsFixtures), logger); err != nil {
		logger.Warn("hotel fixtures load failed", "error", err)
	}

	calculator := stay.NewCalculator(cfg.Pricing)
	effective := calculator.Config()
	logger.Info("pricing configured",
		"currency", effective.Currency,
		"service_fee_flat", effective.ServiceFeeFlat.String(),
		"tax_rate_percent", effective.TaxRatePercent.String(),
		"rounding", string(effective.Rounding),
		"guest_policy", effective.GuestPolicy.Name(),
	)

	pricingPort := pricing.StayPricing{Calculator: calculator, Location: cfg.Timezone}
	buses := wiring.Build(wiring.Deps{
		UoW:            factory,
		Pricing:        pricingPort,
		Outbox:         box,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Logger:         logger,
	})

	app.handlers = ginserver.Handlers{
		Hotels:  ginserver.HotelHandler{Queries: buses.Queries, Logger: logger},
		Quotes:  ginserver.QuoteHandler{Queries: buses.Queries, Logger: logger},
		Booking: ginserver.BookingHandler{Commands: buses.Commands, Queries: buses.Queries, Logger: logger},
	}
	return app, nil
}

func purgeIdempotency(ctx context.Context, store *memory.IdempotencyStore, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Purge(now.Add(-ttl)); n > 0 {
				logger.Debug("idempotency records purged", "count", n)
			}
		}
	}
}
