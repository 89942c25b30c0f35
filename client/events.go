package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// EventForm mirrors the fields of the add and edit pages.
// Zero values are left out of the encoded form.
type EventForm struct {
	Id    int
	Name  string
	Start string
	End   string
	Place string
}

func (f EventForm) Values() url.Values {
	values := url.Values{}
	if f.Id != 0 {
		values.Set("Id", fmt.Sprint(f.Id))
	}
	values.Set("Name", f.Name)
	if f.Start != "" {
		values.Set("Start", f.Start)
	}
	if f.End != "" {
		values.Set("End", f.End)
	}
	if f.Place != "" {
		values.Set("Place", f.Place)
	}
	return values
}

func (c *EventmiClient) GetAllEvents(ctx context.Context) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/All"})
}

func (c *EventmiClient) GetAddForm(ctx context.Context) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Add"})
}

func (c *EventmiClient) AddEvent(ctx context.Context, form EventForm) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Add", Method: http.MethodPost, Form: form.Values()})
}

func (c *EventmiClient) GetEventDetails(ctx context.Context, eventId int) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Details/%d", PathParams: []any{eventId}})
}

func (c *EventmiClient) GetEditForm(ctx context.Context, eventId int) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Edit/%d", PathParams: []any{eventId}})
}

func (c *EventmiClient) EditEvent(ctx context.Context, eventId int, form EventForm) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Edit/%d", Method: http.MethodPost, PathParams: []any{eventId}, Form: form.Values()})
}

func (c *EventmiClient) DeleteEvent(ctx context.Context, eventId int) (int, error) {
	return c.Status(ctx, RequestArgs{Endpoint: "/Event/Delete/%d", Method: http.MethodPost, PathParams: []any{eventId}, Form: url.Values{}})
}

// Event is the admin api representation of an event.
type Event struct {
	Id    int       `json:"id"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Place string    `json:"place"`
}

// ErrNotFound is returned by the admin api helpers for 404 responses.
var ErrNotFound = fmt.Errorf("event not found")

func (c *EventmiClient) FindEventsByName(ctx context.Context, name string) ([]Event, error) {
	events := make([]Event, 0)
	err := c.getJSON(ctx, RequestArgs{Endpoint: "/api/events", QueryParams: map[string]string{"name": name}}, &events)
	return events, err
}

func (c *EventmiClient) GetEvent(ctx context.Context, eventId int) (*Event, error) {
	var event Event
	if err := c.getJSON(ctx, RequestArgs{Endpoint: "/api/events/%d", PathParams: []any{eventId}}, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *EventmiClient) getJSON(ctx context.Context, requestArgs RequestArgs, target any) error {
	resp, err := c.SendRequest(ctx, requestArgs)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, resp.Request.URL.Path)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
