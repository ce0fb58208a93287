// Package messaging forwards domain events to Kafka.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopapi/backend/internal/application/notification"
	"github.com/shopapi/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// messageWriter is the subset of *kafka.Writer the sink uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink writes serialized events to a single topic
type KafkaSink struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaSink creates a sink backed by a kafka.Writer
func NewKafkaSink(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaSink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaSink(writer, cfg.Topic, logger), nil
}

func newKafkaSink(writer messageWriter, topic string, logger *zap.Logger) *KafkaSink {
	return &KafkaSink{writer: writer, topic: topic, logger: logger}
}

// Write implements notification.EventSink
func (s *KafkaSink) Write(ctx context.Context, key string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka write to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer
func (s *KafkaSink) Close() error {
	if err := s.writer.Close(); err != nil {
		s.logger.Warn("Kafka writer close failed", zap.Error(err))
		return err
	}
	return nil
}

var _ notification.EventSink = (*KafkaSink)(nil)
