package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alimikegami/point-of-sales/product-catalog-service/config"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProductEventPublisher emits product lifecycle events. Delivery is best
// effort: a failed write is logged and never fails the request.
type ProductEventPublisher struct {
	writer MessageWriter
}

// CreateKafkaWriter returns a writer that flushes every message on its own.
// Publish runs inside the request, so waiting for a batch to fill would delay
// each write by the batch timeout.
func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  1,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
}

// CreateProductEventPublisher returns nil when no broker is configured.
func CreateProductEventPublisher(config *config.Config) *ProductEventPublisher {
	if config.KafkaConfig.BrokerAddress == "" {
		log.Info().Str("component", "CreateProductEventPublisher").Msg("no broker configured, product events disabled")
		return nil
	}

	return NewProductEventPublisher(CreateKafkaWriter(config))
}

func NewProductEventPublisher(writer MessageWriter) *ProductEventPublisher {
	return &ProductEventPublisher{writer: writer}
}

func (p *ProductEventPublisher) Publish(ctx context.Context, key string, eventType string, data interface{}) {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Msg("")
		return
	}

	err = p.writer.WriteMessages(context.WithoutCancel(ctx), kafka.Message{
		Key:   []byte(key),
		Value: jsonMsg,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", eventType).Msg("failed to write kafka message")
	}
}

func (p *ProductEventPublisher) Close() error {
	return p.writer.Close()
}
