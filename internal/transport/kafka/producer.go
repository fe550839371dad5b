package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/IBM/sarama"

	"entregas/internal/service/proof"
)

// Producer publishes delivery status events to a Kafka topic.
type Producer struct {
	sp    sarama.SyncProducer
	topic string
}

// replaceable in tests
var newSyncProducer = sarama.NewSyncProducer

// NewProducer creates a new Kafka producer. It returns (nil, nil) when
// brokers or topic are not configured; a nil Producer is a safe no-op.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	sp, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: new producer: %w", err)
	}

	return &Producer{sp: sp, topic: topic}, nil
}

// PublishStatus sends one status event, keyed by delivery id so events for
// the same record stay ordered.
func (p *Producer) PublishStatus(_ context.Context, ev proof.StatusEvent) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(toDTO(ev))
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.DeliveryID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, err := p.sp.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka: send event: %w", err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sp.Close()
}
