// Package harness verifies what the eventmi http surface did to the stored events,
// independently of the html controller.
package harness

import (
	"context"
	"errors"
	"fmt"

	"eventmi/client"
	"eventmi/repository"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Verifier interface {
	CheckEventExists(ctx context.Context, name string) (bool, error)
	GetEventById(ctx context.Context, eventId int) (*repository.Event, error)
}

// DBVerifier reads the events table directly. Every check runs in its own session.
type DBVerifier struct {
	db *gorm.DB
}

func NewDBVerifier(db *gorm.DB) *DBVerifier {
	return &DBVerifier{db: db}
}

func (v *DBVerifier) CheckEventExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := v.db.Session(&gorm.Session{NewDB: true}).WithContext(ctx).
		Model(&repository.Event{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check event %q: %w", name, err)
	}
	return count > 0, nil
}

func (v *DBVerifier) GetEventById(ctx context.Context, eventId int) (*repository.Event, error) {
	var event repository.Event
	err := v.db.Session(&gorm.Session{NewDB: true}).WithContext(ctx).First(&event, eventId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event %d: %w", eventId, err)
	}
	return &event, nil
}

// APIVerifier answers the same questions through the admin query api.
type APIVerifier struct {
	client *client.EventmiClient
}

// NewAPIVerifier expects a client carrying a token with the admin permission.
func NewAPIVerifier(c *client.EventmiClient) *APIVerifier {
	return &APIVerifier{client: c}
}

func (v *APIVerifier) CheckEventExists(ctx context.Context, name string) (bool, error) {
	events, err := v.client.FindEventsByName(ctx, name)
	if err != nil {
		return false, err
	}
	return len(events) > 0, nil
}

func (v *APIVerifier) GetEventById(ctx context.Context, eventId int) (*repository.Event, error) {
	event, err := v.client.GetEvent(ctx, eventId)
	if errors.Is(err, client.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &repository.Event{
		Id:    event.Id,
		Name:  event.Name,
		Start: event.Start,
		End:   event.End,
		Place: event.Place,
	}, nil
}
