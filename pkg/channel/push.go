package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

// messageWriter is implemented by kafka.Writer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Push publishes in-app notifications to a kafka topic, keyed by user id so a user's
// notifications stay ordered within a partition. The ref is the delivery record id.
type Push struct {
	writer messageWriter
}

// PushEvent is the payload published for the app
type PushEvent struct {
	UserID   string    `json:"userId"`
	RecordID string    `json:"recordId"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// NewPush makes a push adapter writing to topic on brokers
func NewPush(brokers []string, topic string) *Push {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &Push{writer: w}
}

// Channel returns app channel
func (p *Push) Channel() domain.Channel { return domain.ChannelApp }

// Send publishes the notification for the user in msg.Destination
func (p *Push) Send(ctx context.Context, msg dispatch.Message) (string, error) {
	payload, err := json.Marshal(PushEvent{UserID: msg.Destination, RecordID: msg.RecordID,
		Subject: msg.Subject, Body: msg.Body, SentAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("marshal push event: %w", err)
	}
	kmsg := kafka.Message{Key: []byte(msg.Destination), Value: payload, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, kmsg); err != nil {
		return "", fmt.Errorf("write push event: %w", err)
	}
	return msg.RecordID, nil
}

// Close flushes and closes the kafka writer
func (p *Push) Close() error {
	return p.writer.Close()
}
