package kafka_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/kafka"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var topics = kafka.Topics{Orders: "courier.orders", Locations: "courier.locations"}

func newProducer(t *testing.T) *mocks.SyncProducer {
	t.Helper()
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

func TestNewPublisher(t *testing.T) {
	_, err := kafka.NewPublisher(nil, topics, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = kafka.NewPublisher(newProducer(t), kafka.Topics{Orders: "o"}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPublisher_PublishOrderChanged(t *testing.T) {
	producer := newProducer(t)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event map[string]any
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event["type"] != kafka.OrderChanged || event["status"] != "enviado" ||
			event["order_id"] != 5.0 || event["courier_id"] != 7.0 {
			return errors.New("unexpected event")
		}
		return nil
	})
	publisher, err := kafka.NewPublisher(producer, topics, nil)
	require.NoError(t, err)
	courierID := order.CourierID(7)
	o, err := order.RestoreOrder(5, order.EnRoute, &courierID, order.Details{})
	require.NoError(t, err)

	require.NoError(t, publisher.PublishOrderChanged(t.Context(), 7, o))
}

func TestPublisher_PublishCourierLocation(t *testing.T) {
	point, err := kernel.NewGeoPoint(9.01, -82.41)
	require.NoError(t, err)
	pos, err := courier.NewPosition(point, 12, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("sends the fix", func(t *testing.T) {
		producer := newProducer(t)
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var event map[string]any
			if err := json.Unmarshal(val, &event); err != nil {
				return err
			}
			if event["type"] != kafka.CourierLocation || event["lat"] != 9.01 ||
				event["captured_at"] != "2025-03-01T10:00:00Z" {
				return errors.New("unexpected event")
			}
			return nil
		})
		publisher, err := kafka.NewPublisher(producer, topics, nil)
		require.NoError(t, err)

		require.NoError(t, publisher.PublishCourierLocation(t.Context(), 7, pos))
	})

	t.Run("reports broker failures", func(t *testing.T) {
		producer := newProducer(t)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		publisher, err := kafka.NewPublisher(producer, topics, nil)
		require.NoError(t, err)

		err = publisher.PublishCourierLocation(t.Context(), 7, pos)

		require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		assert.Contains(t, err.Error(), "courier.locations")
	})

	t.Run("rejects an unconstructed fix", func(t *testing.T) {
		publisher, err := kafka.NewPublisher(newProducer(t), topics, nil)
		require.NoError(t, err)

		err = publisher.PublishCourierLocation(t.Context(), 7, courier.Position{})

		require.ErrorIs(t, err, courier.ErrPositionIsNotConstructed)
	})
}
