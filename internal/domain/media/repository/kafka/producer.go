// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Conte777/mediabot/config"
	"github.com/Conte777/mediabot/internal/domain/media/consts"
	"github.com/Conte777/mediabot/internal/domain/media/deps"
	"github.com/Conte777/mediabot/internal/domain/media/dto"
	mediaerrors "github.com/Conte777/mediabot/internal/domain/media/errors"
)

// Producer implements deps.FetchEventProducer
type Producer struct {
	producer sarama.SyncProducer
	logger   zerolog.Logger
}

// NewProducer creates a Kafka producer for fetch events.
// Without brokers configured events are dropped.
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (deps.FetchEventProducer, error) {
	if len(cfg.Brokers) == 0 {
		logger.Info().Msg("Kafka brokers not configured, fetch events disabled")
		return NewNopProducer(), nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create producer: %w", mediaerrors.ErrKafkaProducer, err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized successfully")

	return newProducer(producer, logger), nil
}

func newProducer(producer sarama.SyncProducer, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		logger:   logger,
	}
}

// SendFetchCompleted sends a delivered link event to Kafka
func (p *Producer) SendFetchCompleted(ctx context.Context, event *dto.FetchEvent) error {
	return p.sendEvent(ctx, consts.TopicFetchCompleted, event)
}

// SendFetchFailed sends a given up link event to Kafka
func (p *Producer) SendFetchFailed(ctx context.Context, event *dto.FetchEvent) error {
	return p.sendEvent(ctx, consts.TopicFetchFailed, event)
}

// sendEvent sends an event keyed by chat so one chat's events stay ordered
func (p *Producer) sendEvent(ctx context.Context, topic string, event *dto.FetchEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ChatID, 10)),
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return fmt.Errorf("%w: %w", mediaerrors.ErrKafkaProducer, err)
	}

	p.logger.Debug().
		Str("topic", topic).
		Str("fetch_id", event.FetchID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}

type nopProducer struct{}

// NewNopProducer returns a producer that discards every event
func NewNopProducer() deps.FetchEventProducer {
	return nopProducer{}
}

func (nopProducer) SendFetchCompleted(context.Context, *dto.FetchEvent) error { return nil }

func (nopProducer) SendFetchFailed(context.Context, *dto.FetchEvent) error { return nil }

func (nopProducer) Close() error { return nil }
