package outbox

import (
	"context"
	"log/slog"

	appoutbox "hotelstay/internal/app/outbox"
)

// LogPublisher writes flushed records to the log when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, rec appoutbox.EventRecord) error {
	if p.Logger == nil {
		return nil
	}
	p.Logger.InfoContext(ctx, "domain event", "event", rec.Name, "aggregate", rec.Aggregate, "id", rec.ID)
	return nil
}
