package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/janus-auth/janus/ports"
)

// SessionTopic carries session lifecycle events for other instances or
// downstream consumers (telemetry, audit).
const SessionTopic = "janus.sessions"

const (
	KindLoggedIn = "logged_in"
	KindRotated  = "rotated"
)

// SessionEvent is the payload published on SessionTopic.
type SessionEvent struct {
	Subject string    `json:"subject"`
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill session event publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     SessionTopic,
	}
}

// PublishLoggedIn announces a fresh login for subject.
func (p *WatermillPublisher) PublishLoggedIn(ctx context.Context, subject string) error {
	return p.publish(subject, KindLoggedIn)
}

// PublishRotated announces a refresh token rotation for subject.
func (p *WatermillPublisher) PublishRotated(ctx context.Context, subject string) error {
	return p.publish(subject, KindRotated)
}

func (p *WatermillPublisher) publish(subject, kind string) error {
	event := SessionEvent{
		Subject: subject,
		Kind:    kind,
		At:      time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
