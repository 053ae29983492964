package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher defines the interface for publishing quiz events
type Publisher interface {
	PublishAnswerSubmitted(ctx context.Context, event *QuizEvent) error
	Close() error
}

// KafkaPublisher implements Publisher using Watermill with Kafka
type KafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaPublisher(config PublisherConfig) (*KafkaPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishAnswerSubmitted publishes an answer submitted event to Kafka
func (p *KafkaPublisher) PublishAnswerSubmitted(ctx context.Context, event *QuizEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish quiz event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish quiz event: %w", err)
	}

	p.logger.Info("Published quiz event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaPublisher) Close() error {
	return p.publisher.Close()
}

// MockPublisher is an in-memory implementation for tests and local runs
type MockPublisher struct {
	Events []QuizEvent
	Logger *slog.Logger
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{
		Events: make([]QuizEvent, 0),
		Logger: logger,
	}
}

// PublishAnswerSubmitted stores the event in memory
func (m *MockPublisher) PublishAnswerSubmitted(ctx context.Context, event *QuizEvent) error {
	m.Events = append(m.Events, *event)
	m.Logger.Info("Mock: Published quiz event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockPublisher) Close() error {
	return nil
}
