// Package kafka publishes order domain events to Kafka topics with segmentio/kafka-go.
//
// Messages are keyed by order id so every event of one order lands on the same partition and
// keeps its order. The routing key and event id travel as headers as well as in the JSON body.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic = "order.events"

	HeaderEventID    = "event-id"
	HeaderEventType  = "event-type"
	HeaderRoutingKey = "routing-key"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher on Kafka.
type Publisher struct {
	writer       MessageWriter
	defaultTopic string
	logger       *slog.Logger
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter builds a writer without a fixed topic; each message names its own.
func NewWriter(brokers []string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, nil
}

// NewPublisher uses DefaultTopic when defaultTopic is blank.
func NewPublisher(writer MessageWriter, defaultTopic string, logger *slog.Logger) *Publisher {
	if strings.TrimSpace(defaultTopic) == "" {
		defaultTopic = DefaultTopic
	}

	return &Publisher{
		writer:       writer,
		defaultTopic: defaultTopic,
		logger:       logger.With("component", "kafka_publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, event order.DomainEvent) error {
	return p.PublishTo(ctx, event, p.defaultTopic)
}

func (p *Publisher) PublishTo(ctx context.Context, event order.DomainEvent, destination string) error {
	if strings.TrimSpace(destination) == "" {
		destination = p.defaultTopic
	}

	msg, err := newMessage(event, destination)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish %s to %s: %w", event.EventType(), destination, err)
	}

	p.logger.DebugContext(ctx, "event published",
		"topic", destination,
		"event_id", event.EventID().String(),
		"event_type", string(event.EventType()),
		"order_id", event.OrderID().String(),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(event order.DomainEvent, topic string) (kafka.Message, error) {
	value, err := json.Marshal(NewOrderEventMessage(event))
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(event.OrderID().String()),
		Value: value,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.EventID().String())},
			{Key: HeaderEventType, Value: []byte(event.EventType())},
			{Key: HeaderRoutingKey, Value: []byte(event.EventType().RoutingKey())},
		},
	}, nil
}
