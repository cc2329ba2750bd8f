package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	TopicScheduling = "scheduling.events"

	EventCoursesAssigned = "student.courses_assigned"
	EventCourseRemoved   = "student.course_removed"
	EventStudentDeleted  = "student.deleted"
	EventCourseDeleted   = "course.deleted"
)

// Event is the envelope published for every relationship mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "scheduling-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ===== KAFKA PUBLISHER =====

type kafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaEventPublisher connects a watermill Kafka publisher.
func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &kafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(TopicScheduling, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("Event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

func (p *kafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== MOCK PUBLISHER =====

// MockEventPublisher records events in memory, for tests and for running
// without a broker.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	if m.logger != nil {
		m.logger.Debug("Mock event recorded", "event_type", event.Type)
	}
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
}
