// Package kafka publishes tracker events to Kafka through a sarama
// SyncProducer. Messages are keyed by courier id so that one courier's events
// stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/metrics"

	"github.com/Shopify/sarama"
)

// Event types.
const (
	OrderChanged    = "order.changed"
	CourierLocation = "courier.location"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Topics names the destination of each event type.
type Topics struct {
	Orders    string
	Locations string
}

type orderChangedEvent struct {
	Type       string    `json:"type"`
	CourierID  int64     `json:"courier_id"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type courierLocationEvent struct {
	Type       string    `json:"type"`
	CourierID  int64     `json:"courier_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

// Publisher implements ports.EventPublisher.
type Publisher struct {
	producer sarama.SyncProducer
	topics   Topics
	now      func() time.Time
	logger   *slog.Logger
}

func NewPublisher(producer sarama.SyncProducer, topics Topics, logger *slog.Logger) (*Publisher, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if topics.Orders == "" || topics.Locations == "" {
		return nil, errs.NewValueIsRequiredError("topics")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		producer: producer,
		topics:   topics,
		now:      time.Now,
		logger:   logger.With("component", "kafka"),
	}, nil
}

// NewSyncProducer connects to brokers with the acknowledgement settings the
// publisher relies on.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func (p *Publisher) PublishOrderChanged(ctx context.Context, courierID order.CourierID, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return p.send(ctx, p.topics.Orders, courierID, orderChangedEvent{
		Type:       OrderChanged,
		CourierID:  int64(courierID),
		OrderID:    int64(o.ID()),
		Status:     o.Status().Wire(),
		OccurredAt: p.now().UTC(),
	})
}

func (p *Publisher) PublishCourierLocation(ctx context.Context, courierID order.CourierID, pos courier.Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	return p.send(ctx, p.topics.Locations, courierID, courierLocationEvent{
		Type:       CourierLocation,
		CourierID:  int64(courierID),
		Lat:        pos.Point().Lat(),
		Lng:        pos.Point().Lng(),
		Accuracy:   pos.Accuracy(),
		CapturedAt: pos.CapturedAt().UTC(),
	})
}

func (p *Publisher) send(ctx context.Context, topic string, courierID order.CourierID, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(int64(courierID), 10)),
		Value: sarama.ByteEncoder(data),
	})
	metrics.ObservePublish(topic, err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "event published", "topic", topic, "partition", partition, "offset", offset)
	return nil
}

// Close releases the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
