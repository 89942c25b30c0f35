package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventmi/app_error"
	"eventmi/metrics"
	"eventmi/repository"

	"gorm.io/gorm"
)

// EventStore is the persistence contract the service relies on.
// *repository.EventRepository implements it.
type EventStore interface {
	GetEventById(eventId int) (*repository.Event, error)
	Save(event *repository.Event) (*repository.Event, error)
	Update(eventId int, event *repository.Event) (*repository.Event, error)
	Delete(eventId int) error
	FindAll() ([]*repository.Event, error)
	FindByName(name string) ([]*repository.Event, error)
}

var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	event_repository EventStore
	publisher        Publisher
	now              func() time.Time
}

func NewEventService(store EventStore, publisher Publisher) *EventService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &EventService{
		event_repository: store,
		publisher:        publisher,
		now:              time.Now,
	}
}

func (e *EventService) GetAllEvents() ([]*repository.Event, error) {
	return e.event_repository.FindAll()
}

func (e *EventService) GetEventsByName(name string) ([]*repository.Event, error) {
	return e.event_repository.FindByName(name)
}

func (e *EventService) GetEventById(eventId int) (*repository.Event, error) {
	event, err := e.event_repository.GetEventById(eventId)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

func (e *EventService) CreateEvent(ctx context.Context, event *repository.Event) (*repository.Event, error) {
	if err := Validate(event); err != nil {
		return nil, err
	}
	event.Id = 0
	event.Name = strings.TrimSpace(event.Name)
	event.Place = strings.TrimSpace(event.Place)
	created, err := e.event_repository.Save(event)
	if err != nil {
		return nil, err
	}
	e.recordChange(ctx, EventCreated, created.Id, created)
	return created, nil
}

func (e *EventService) UpdateEvent(ctx context.Context, eventId int, event *repository.Event) (*repository.Event, error) {
	if event.Id != 0 && event.Id != eventId {
		return nil, app_error.NotFound(fmt.Errorf("%w: path id %d, submitted id %d", ErrEventNotFound, eventId, event.Id))
	}
	if err := Validate(event); err != nil {
		return nil, err
	}
	event.Name = strings.TrimSpace(event.Name)
	event.Place = strings.TrimSpace(event.Place)
	updated, err := e.event_repository.Update(eventId, event)
	if err != nil {
		return nil, notFound(err)
	}
	e.recordChange(ctx, EventUpdated, updated.Id, updated)
	return updated, nil
}

func (e *EventService) DeleteEvent(ctx context.Context, eventId int) error {
	if err := e.event_repository.Delete(eventId); err != nil {
		return notFound(err)
	}
	e.recordChange(ctx, EventDeleted, eventId, nil)
	return nil
}

// Validate checks the invariants every stored event has to satisfy.
func Validate(event *repository.Event) error {
	if strings.TrimSpace(event.Name) == "" {
		return app_error.Validation("Name", "name is required")
	}
	if event.Start.IsZero() {
		return app_error.Validation("Start", "start is required")
	}
	if event.End.IsZero() {
		return app_error.Validation("End", "end is required")
	}
	if !event.Start.Before(event.End) {
		return app_error.Validation("End", "end must be after start")
	}
	return nil
}

func (e *EventService) recordChange(ctx context.Context, changeType ChangeType, eventId int, event *repository.Event) {
	metrics.EventMutationsCounter.WithLabelValues(string(changeType)).Inc()
	change := EventChange{
		Type:      changeType,
		EventId:   eventId,
		Event:     event,
		Timestamp: e.now(),
	}
	if err := e.publisher.Publish(ctx, change); err != nil {
		metrics.ChangePublishErrorCounter.Inc()
		log.Printf("failed to publish %s change for event %d: %v", changeType, eventId, err)
	}
}

// notFound classifies missing records and id mismatches as 404s and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repository.ErrIdMismatch) {
		return app_error.NotFound(fmt.Errorf("%w: %v", ErrEventNotFound, err))
	}
	return err
}
