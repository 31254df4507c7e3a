package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func newTestProducer(w kafka.WriterInterface) *kafka.Producer {
	return kafka.NewProducerWithWriter(w, kafka.ProducerConfig{
		Brokers:     []string{"localhost:9092"},
		TopicPrefix: "georisk",
	}, logging.NewNopLogger())
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	t.Parallel()
	_, err := kafka.NewProducer(kafka.ProducerConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestPublish_PrependsTopicPrefix(t *testing.T) {
	t.Parallel()
	w := &fakeWriter{}
	p := newTestProducer(w)

	err := p.Publish(context.Background(), &common.ProducerMessage{
		Topic: kafka.TopicForecastUpdated,
		Value: []byte(`{}`),
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, "georisk.forecast.updated", w.messages[0].Topic)
	assert.Equal(t, int64(1), p.Sent())
}

func TestPublish_ValidatesMessage(t *testing.T) {
	t.Parallel()
	p := newTestProducer(&fakeWriter{})

	assert.Error(t, p.Publish(context.Background(), &common.ProducerMessage{Value: []byte("x")}))
	assert.Error(t, p.Publish(context.Background(), &common.ProducerMessage{Topic: "t"}))
}

func TestPublish_CountsFailures(t *testing.T) {
	t.Parallel()
	w := &fakeWriter{err: errors.New("broker unreachable")}
	p := newTestProducer(w)

	err := p.Publish(context.Background(), &common.ProducerMessage{
		Topic: "t", Value: []byte("x"),
	})
	require.Error(t, err)
	assert.Equal(t, int64(1), p.Failed())
	assert.Equal(t, int64(0), p.Sent())
}

func TestPublishEvent_WrapsInEnvelope(t *testing.T) {
	t.Parallel()
	w := &fakeWriter{}
	p := newTestProducer(w)

	payload := kafka.ForecastUpdatedPayload{
		Timeframe:     "short",
		ForecastCount: 2,
		Countries:     []string{"Latvia"},
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, p.PublishEvent(context.Background(),
		kafka.TopicForecastUpdated, "forecast.updated", payload))

	require.Len(t, w.messages, 1)
	var env kafka.EventEnvelope
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &env))
	assert.Equal(t, "forecast.updated", env.EventType)
	assert.Equal(t, "v1", env.SchemaVersion)
	assert.NotEmpty(t, env.EventID)

	var decoded kafka.ForecastUpdatedPayload
	require.NoError(t, env.DecodePayload(&decoded))
	assert.Equal(t, "short", decoded.Timeframe)
	assert.Equal(t, 2, decoded.ForecastCount)
}

func TestClose_IsIdempotentAndBlocksPublish(t *testing.T) {
	t.Parallel()
	w := &fakeWriter{}
	p := newTestProducer(w)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	err := p.Publish(context.Background(), &common.ProducerMessage{
		Topic: "t", Value: []byte("x"),
	})
	assert.ErrorIs(t, err, kafka.ErrProducerClosed)
}
