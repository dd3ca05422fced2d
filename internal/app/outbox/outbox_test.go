package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/domain/shared/events"
)

type stayEvent struct {
	Name string    `json:"name"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

func (e stayEvent) EventName() string     { return e.Name }
func (e stayEvent) AggregateID() string   { return e.ID }
func (e stayEvent) OccurredAt() time.Time { return e.At }

type recorded struct {
	events.EventRecorder
}

type collectingOutbox struct {
	records []EventRecord
}

func (o *collectingOutbox) Add(_ context.Context, rec EventRecord) error {
	o.records = append(o.records, rec)
	return nil
}

func (o *collectingOutbox) Flush(context.Context) error { return nil }

func TestEncoderSetsRoutingHeaders(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	enc := JSONEventEncoder{IDGenerator: func() string { return "evt-1" }}
	rec, err := enc.Encode(stayEvent{Name: "calendar.blocked", ID: "h1/deluxe", At: time.Date(2025, 12, 1, 10, 0, 0, 0, ist)})
	require.NoError(t, err)

	assert.Equal(t, "evt-1", rec.ID)
	assert.Equal(t, "h1/deluxe", rec.Aggregate)
	assert.Equal(t, time.UTC, rec.OccurredAt.Location())
	assert.Equal(t, map[string]string{HeaderEventName: "calendar.blocked", HeaderStream: "calendar"}, rec.Headers)
	assert.JSONEq(t, `{"name":"calendar.blocked","id":"h1/deluxe","at":"2025-12-01T10:00:00+05:30"}`, string(rec.Payload))
}

func TestRecordDomainEventsDrainsSources(t *testing.T) {
	cal, booking := &recorded{}, &recorded{}
	cal.Record(stayEvent{Name: "calendar.blocked", ID: "h1/deluxe"})
	booking.Record(stayEvent{Name: "booking.confirmed", ID: "b1"})

	box := &collectingOutbox{}
	require.NoError(t, RecordDomainEvents(context.Background(), box, nil, cal, booking))
	require.Len(t, box.records, 2)
	assert.Equal(t, "calendar.blocked", box.records[0].Name)
	assert.Equal(t, "booking.confirmed", box.records[1].Name)
	assert.Empty(t, cal.PendingEvents())

	booking.Record(stayEvent{Name: "booking.cancelled", ID: "b1"})
	require.NoError(t, RecordDomainEvents(context.Background(), nil, nil, booking))
	assert.Empty(t, booking.PendingEvents())
}
