package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	"eventmi/repository"
	"eventmi/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type memoryStore struct {
	events map[int]*repository.Event
	nextId int
}

func (s *memoryStore) GetEventById(eventId int) (*repository.Event, error) {
	event, ok := s.events[eventId]
	if !ok {
		return nil, fmt.Errorf("failed to find event %d: %w", eventId, gorm.ErrRecordNotFound)
	}
	copied := *event
	return &copied, nil
}

func (s *memoryStore) Save(event *repository.Event) (*repository.Event, error) {
	if event.Id == 0 {
		event.Id = s.nextId
		s.nextId++
	}
	copied := *event
	s.events[event.Id] = &copied
	return event, nil
}

func (s *memoryStore) Update(eventId int, event *repository.Event) (*repository.Event, error) {
	if event.Id != 0 && event.Id != eventId {
		return nil, repository.ErrIdMismatch
	}
	if _, ok := s.events[eventId]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	event.Id = eventId
	return s.Save(event)
}

func (s *memoryStore) Delete(eventId int) error {
	if _, ok := s.events[eventId]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.events, eventId)
	return nil
}

func (s *memoryStore) FindAll() ([]*repository.Event, error) {
	events := make([]*repository.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Id < events[j].Id })
	return events, nil
}

func (s *memoryStore) FindByName(name string) ([]*repository.Event, error) {
	events := make([]*repository.Event, 0)
	all, _ := s.FindAll()
	for _, event := range all {
		if event.Name == name {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *memoryStore) names() []string {
	all, _ := s.FindAll()
	names := make([]string, 0, len(all))
	for _, event := range all {
		names = append(names, event.Name)
	}
	return names
}

func fixtureEvent(id int, name string) *repository.Event {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return &repository.Event{Id: id, Name: name, Start: start, End: start.Add(3 * time.Hour), Place: "Somewhere"}
}

// setUp returns an engine seeded with events 8, 12 and 30.
func setUp() (*gin.Engine, *memoryStore) {
	gin.SetMode(gin.TestMode)
	store := &memoryStore{events: map[int]*repository.Event{}, nextId: 31}
	for _, event := range []*repository.Event{fixtureEvent(8, "Fixture 8"), fixtureEvent(12, "Fixture 12"), fixtureEvent(30, "Fixture 30")} {
		store.events[event.Id] = event
	}
	r := gin.New()
	SetRoutes(r, service.NewEventService(store, nil), testSecret)
	return r, store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
