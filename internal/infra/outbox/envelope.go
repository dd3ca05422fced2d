package outbox

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	appoutbox "hotelstay/internal/app/outbox"
	"hotelstay/internal/domain/shared/events"
)

// Producer is the broker side of the outbox.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

const defaultSource = "app://hotelstay"

// Envelope wraps outbox records into CloudEvents JSON and picks the topic.
type Envelope struct {
	TopicPrefix string
	Source      string
}

func (e Envelope) Format(rec appoutbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            rec.Name + ".v1",
		"source":          e.source(),
		"subject":         rec.Aggregate,
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if trace, ok := rec.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

// Topic maps "booking.confirmed" to "<prefix>booking.events.v1".
func (e Envelope) Topic(name string) string {
	return e.TopicPrefix + events.Stream(name) + ".events.v1"
}

func (e Envelope) source() string {
	if e.Source != "" {
		return e.Source
	}
	return defaultSource
}

// RecordPublisher sends records straight to a producer. The in-memory outbox
// uses it on flush.
type RecordPublisher struct {
	Producer Producer
	Envelope Envelope
}

func (p RecordPublisher) Publish(ctx context.Context, rec appoutbox.EventRecord) error {
	payload, headers, err := p.Envelope.Format(rec)
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, p.Envelope.Topic(rec.Name), rec.Aggregate, payload, headers)
}
