package repository

import (
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"eventmi/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var database *testutil.Postgres

func TestMain(m *testing.M) {
	var err error
	database, err = testutil.StartPostgres(&Event{})
	if err != nil {
		log.Printf("postgres unavailable, integration tests will be skipped: %v", err)
	}
	code := m.Run()
	database.Close()
	os.Exit(code)
}

func SetUp(t *testing.T) *EventRepository {
	db := database.Require(t)
	t.Cleanup(func() { TearDown(db) })
	return NewEventRepository(db)
}

func TearDown(db *gorm.DB) {
	db.Exec("TRUNCATE events RESTART IDENTITY")
}

func newEvent(name string) *Event {
	start := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return &Event{
		Name:  name,
		Start: start,
		End:   start.Add(3 * time.Hour),
		Place: "Somewhere",
	}
}

func TestSaveAssignsId(t *testing.T) {
	repo := SetUp(t)

	event, err := repo.Save(newEvent("Test Event 10"))
	require.NoError(t, err)
	assert.NotZero(t, event.Id)

	stored, err := repo.GetEventById(event.Id)
	require.NoError(t, err)
	assert.Equal(t, "Test Event 10", stored.Name)
	assert.True(t, event.Start.Equal(stored.Start))
	assert.True(t, event.End.Equal(stored.End))
	assert.Equal(t, "Somewhere", stored.Place)
}

func TestGetEventByIdNotFound(t *testing.T) {
	repo := SetUp(t)

	_, err := repo.GetEventById(0)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFindAllOrdersByStart(t *testing.T) {
	repo := SetUp(t)

	late := newEvent("late")
	late.Start = late.Start.Add(24 * time.Hour)
	late.End = late.End.Add(24 * time.Hour)
	_, err := repo.Save(late)
	require.NoError(t, err)
	_, err = repo.Save(newEvent("early"))
	require.NoError(t, err)

	events, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "early", events[0].Name)
	assert.Equal(t, "late", events[1].Name)
}

func TestFindByNameIsExact(t *testing.T) {
	repo := SetUp(t)

	_, err := repo.Save(newEvent("Conference"))
	require.NoError(t, err)
	_, err = repo.Save(newEvent("Conference 2"))
	require.NoError(t, err)

	events, err := repo.FindByName("Conference")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Conference", events[0].Name)

	events, err = repo.FindByName("conference")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdate(t *testing.T) {
	repo := SetUp(t)

	event, err := repo.Save(newEvent("before"))
	require.NoError(t, err)

	changes := newEvent("after")
	changes.Id = event.Id
	changes.Place = ""
	updated, err := repo.Update(event.Id, changes)
	require.NoError(t, err)
	assert.Equal(t, event.Id, updated.Id)

	stored, err := repo.GetEventById(event.Id)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Name)
	assert.Equal(t, "", stored.Place)
}

func TestUpdateRejectsIdMismatch(t *testing.T) {
	repo := SetUp(t)

	event, err := repo.Save(newEvent("original"))
	require.NoError(t, err)

	changes := newEvent("changed")
	changes.Id = event.Id + 100
	_, err = repo.Update(event.Id, changes)
	assert.True(t, errors.Is(err, ErrIdMismatch))

	stored, err := repo.GetEventById(event.Id)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Name)
}

func TestUpdateUnknownEvent(t *testing.T) {
	repo := SetUp(t)

	_, err := repo.Update(42, newEvent("ghost"))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDelete(t *testing.T) {
	repo := SetUp(t)

	event, err := repo.Save(newEvent("doomed"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(event.Id))
	_, err = repo.GetEventById(event.Id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.Delete(event.Id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
