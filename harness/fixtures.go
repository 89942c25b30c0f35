package harness

import (
	"fmt"
	"time"

	"eventmi/client"
	"eventmi/repository"

	"gorm.io/gorm"
)

// Ids of the seeded events the scenarios rely on.
const (
	DetailsEventId = 8
	DeleteEventId  = 12
	InvalidEditId  = 30
)

// EditTimeLayout is the MM/dd/yyyy hh:mm tt format edit payloads are posted with.
const EditTimeLayout = "01/02/2006 03:04 PM"

func Fixtures() []*repository.Event {
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	return []*repository.Event{
		{Id: DetailsEventId, Name: "Spring Meetup", Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour), Place: "Main Hall"},
		{Id: DeleteEventId, Name: "Cancelled Workshop", Start: day.Add(14 * time.Hour), End: day.Add(16 * time.Hour), Place: "Room 2"},
		{Id: InvalidEditId, Name: "Evening Talk", Start: day.Add(18 * time.Hour), End: day.Add(20 * time.Hour)},
	}
}

// Seed replaces the contents of the events table with the fixtures and moves the
// id sequence past them.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := Reset(tx); err != nil {
			return err
		}
		if err := tx.Create(Fixtures()).Error; err != nil {
			return fmt.Errorf("failed to seed events: %w", err)
		}
		err := tx.Exec(`SELECT setval(pg_get_serial_sequence('events', 'id'), (SELECT MAX(id) FROM events))`).Error
		if err != nil {
			return fmt.Errorf("failed to reset event id sequence: %w", err)
		}
		return nil
	})
}

func Reset(db *gorm.DB) error {
	if err := db.Exec("TRUNCATE events RESTART IDENTITY").Error; err != nil {
		return fmt.Errorf("failed to truncate events: %w", err)
	}
	return nil
}

// EditForm builds an edit payload from the current values of event.
func EditForm(event *repository.Event) client.EventForm {
	return client.EventForm{
		Id:    event.Id,
		Name:  event.Name,
		Start: event.Start.UTC().Format(EditTimeLayout),
		End:   event.End.UTC().Format(EditTimeLayout),
		Place: event.Place,
	}
}
