package memory

import (
	"context"
	"sync"

	appoutbox "hotelstay/internal/app/outbox"
)

// Publisher receives flushed outbox records.
type Publisher interface {
	Publish(ctx context.Context, record appoutbox.EventRecord) error
}

// Outbox keeps events in memory until flushed to an optional publisher.
type Outbox struct {
	mu        sync.Mutex
	records   []appoutbox.EventRecord
	publisher Publisher
}

func NewOutbox(publisher Publisher) *Outbox {
	return &Outbox{publisher: publisher}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

// Flush hands pending records to the publisher in order. Records that fail to
// publish stay queued for the next flush.
func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.publisher == nil {
		o.records = nil
		return nil
	}
	for i, rec := range o.records {
		if err := o.publisher.Publish(ctx, rec); err != nil {
			o.records = o.records[i:]
			return err
		}
	}
	o.records = nil
	return nil
}

// Pending returns a copy of records not flushed yet.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]appoutbox.EventRecord(nil), o.records...)
}

var _ appoutbox.Outbox = (*Outbox)(nil)
