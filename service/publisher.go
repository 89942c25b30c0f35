package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"eventmi/metrics"
	"eventmi/repository"

	"github.com/segmentio/kafka-go"
)

type ChangeType string

const (
	EventCreated ChangeType = "created"
	EventUpdated ChangeType = "updated"
	EventDeleted ChangeType = "deleted"
)

type EventChange struct {
	Type      ChangeType        `json:"type"`
	EventId   int               `json:"event_id"`
	Event     *repository.Event `json:"event,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, change EventChange) error
}

// MessageWriter is the subset of *kafka.Writer used for publishing.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, change EventChange) error {
	value, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(change.EventId)),
		Value: value,
	})
}

// ReportDeliveryError handles changes the broker did not accept after an async write.
func ReportDeliveryError(err error) {
	metrics.ChangePublishErrorCounter.Inc()
	log.Printf("Failed to deliver event change: %v", err)
}

// NoopPublisher drops every change. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, EventChange) error {
	return nil
}
