package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// ErrIdMismatch is returned by Update when the submitted event carries an id
// different from the one being updated.
var ErrIdMismatch = errors.New("event id does not match")

type Event struct {
	Id    int       `gorm:"primaryKey"`
	Name  string    `gorm:"size:50;not null;index"`
	Start time.Time `gorm:"not null"`
	End   time.Time `gorm:"not null"`
	Place string    `gorm:"size:100"`
}

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) GetEventById(eventId int) (*Event, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetEventById"))
	defer timer.ObserveDuration()

	var event Event
	result := r.DB.First(&event, eventId)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find event %d: %w", eventId, result.Error)
	}
	return &event, nil
}

func (r *EventRepository) Save(event *Event) (*Event, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("SaveEvent"))
	defer timer.ObserveDuration()

	result := r.DB.Save(event)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save event: %w", result.Error)
	}
	return event, nil
}

func (r *EventRepository) Update(eventId int, updateEvent *Event) (*Event, error) {
	if updateEvent.Id != 0 && updateEvent.Id != eventId {
		return nil, fmt.Errorf("failed to update event %d: %w", eventId, ErrIdMismatch)
	}
	event, err := r.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	event.Name = updateEvent.Name
	event.Start = updateEvent.Start
	event.End = updateEvent.End
	event.Place = updateEvent.Place
	return r.Save(event)
}

func (r *EventRepository) Delete(eventId int) error {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("DeleteEvent"))
	defer timer.ObserveDuration()

	result := r.DB.Delete(&Event{}, eventId)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventId, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete event %d: %w", eventId, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *EventRepository) FindAll() ([]*Event, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("FindAllEvents"))
	defer timer.ObserveDuration()

	events := make([]*Event, 0)
	result := r.DB.Order("start").Order("id").Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find events: %w", result.Error)
	}
	return events, nil
}

func (r *EventRepository) FindByName(name string) ([]*Event, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("FindEventsByName"))
	defer timer.ObserveDuration()

	events := make([]*Event, 0)
	result := r.DB.Where("name = ?", name).Order("id").Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find events by name: %w", result.Error)
	}
	return events, nil
}
