package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/gourav132/Show-IT/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicProjectEvents = "project.events"
)

const (
	ProfileEventSaved = "profile.saved"

	ProjectEventCreated = "project.created"
	ProjectEventUpdated = "project.updated"
	ProjectEventDeleted = "project.deleted"
)

type ProfileEventPayload struct {
	EventType string    `json:"event_type"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Username  string    `json:"username"`
}

type ProjectEventPayload struct {
	EventType string    `json:"event_type"`
	ProjectID uuid.UUID `json:"project_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

// Producer owns one kafka writer per topic. Messages are keyed by owner so
// one user's events stay ordered within a partition.
type Producer struct {
	profileWriter *kafka.Writer
	projectWriter *kafka.Writer
}

func NewProducer(cfg config.Config) (*Producer, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	return &Producer{
		profileWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    TopicProfileEvents,
			Balancer: &kafka.LeastBytes{},
		},
		projectWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    TopicProjectEvents,
			Balancer: &kafka.LeastBytes{},
		},
	}, nil
}

func (p *Producer) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return p.profileWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (p *Producer) PublishProjectEvent(ctx context.Context, payload ProjectEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal project event: %w", err)
	}
	return p.projectWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	})
}

func (p *Producer) Close() {
	if p.profileWriter != nil {
		p.profileWriter.Close()
	}
	if p.projectWriter != nil {
		p.projectWriter.Close()
	}
}
