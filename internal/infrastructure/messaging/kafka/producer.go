package kafka

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// ErrProducerClosed is returned by Publish after Close.
var ErrProducerClosed = apperrors.New(apperrors.ErrCodeInternal, "producer closed")

// ProducerConfig holds configuration for the Producer.
type ProducerConfig struct {
	Brokers      []string
	TopicPrefix  string
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	RequiredAcks int
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes event envelopes.  It is safe for concurrent use.
type Producer struct {
	writer  WriterInterface
	config  ProducerConfig
	logger  logging.Logger
	closed  atomic.Bool
	metrics *ProducerMetrics
}

// NewProducer creates a Producer writing to the configured brokers.
func NewProducer(cfg ProducerConfig, logger logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "brokers required")
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	var acks kafka.RequiredAcks
	switch cfg.RequiredAcks {
	case 0:
		acks = kafka.RequireNone
	case -1:
		acks = kafka.RequireAll
	default:
		acks = kafka.RequireOne
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: acks,
	}

	return &Producer{
		writer:  writer,
		config:  cfg,
		logger:  logger.Named("kafka"),
		metrics: &ProducerMetrics{},
	}, nil
}

// NewProducerWithWriter constructs a Producer around an existing writer.
// Used by tests to substitute an in-memory writer.
func NewProducerWithWriter(writer WriterInterface, cfg ProducerConfig, logger logging.Logger) *Producer {
	return &Producer{
		writer:  writer,
		config:  cfg,
		logger:  logger.Named("kafka"),
		metrics: &ProducerMetrics{},
	}
}

// Publish sends a single message.  The configured topic prefix is prepended
// to the message topic unless already present.
func (p *Producer) Publish(ctx context.Context, msg *common.ProducerMessage) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "topic required")
	}
	if len(msg.Value) == 0 {
		return apperrors.New(apperrors.ErrCodeValidation, "value required")
	}

	kMsg := p.toKafkaMessage(msg)

	if err := p.writer.WriteMessages(ctx, kMsg); err != nil {
		p.metrics.MessagesFailed.Add(1)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "publish failed").
			WithDetail(kMsg.Topic)
	}

	p.metrics.MessagesSent.Add(1)
	p.metrics.BytesSent.Add(int64(len(msg.Value)))

	p.logger.Debug("message published", logging.String("topic", kMsg.Topic))
	return nil
}

// PublishEvent wraps payload in an envelope and publishes it to topic.
func (p *Producer) PublishEvent(ctx context.Context, topic, eventType string, payload interface{}) error {
	env, err := NewEventEnvelope(eventType, "georisk-worker", payload)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(topic)
	if err != nil {
		return err
	}
	return p.Publish(ctx, msg)
}

// Sent returns the number of successfully published messages.
func (p *Producer) Sent() int64 {
	return p.metrics.MessagesSent.Load()
}

// Failed returns the number of failed publishes.
func (p *Producer) Failed() int64 {
	return p.metrics.MessagesFailed.Load()
}

// Close flushes and closes the underlying writer.  Subsequent Publish calls
// return ErrProducerClosed.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("kafka producer closed",
		logging.Int64("sent", p.metrics.MessagesSent.Load()))
	return err
}

func (p *Producer) toKafkaMessage(msg *common.ProducerMessage) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	topic := msg.Topic
	if p.config.TopicPrefix != "" && !strings.HasPrefix(topic, p.config.TopicPrefix+".") {
		topic = p.config.TopicPrefix + "." + topic
	}

	return kafka.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    ts,
	}
}
