package controller

import (
	"fmt"
	"strings"
	"time"

	"eventmi/repository"

	"github.com/go-playground/validator/v10"
)

const inputTimeLayout = "2006-01-02T15:04"

// Layouts accepted for Start and End: datetime-local inputs, RFC 3339 and the
// US formats older clients post.
var formTimeLayouts = []string{
	inputTimeLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006 03:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// EventForm is the url-encoded payload of the add and edit pages.
type EventForm struct {
	Id    int    `form:"Id"`
	Name  string `form:"Name" binding:"required,max=50"`
	Start string `form:"Start" binding:"required"`
	End   string `form:"End" binding:"required"`
	Place string `form:"Place" binding:"max=100"`
}

type FormErrors map[string]string

func toEventForm(event *repository.Event) EventForm {
	return EventForm{
		Id:    event.Id,
		Name:  event.Name,
		Start: event.Start.UTC().Format(inputTimeLayout),
		End:   event.End.UTC().Format(inputTimeLayout),
		Place: event.Place,
	}
}

// forInput rewrites parseable dates into the layout datetime-local inputs expect.
func (f EventForm) forInput() EventForm {
	f.Start = inputTime(f.Start)
	f.End = inputTime(f.End)
	return f
}

func inputTime(value string) string {
	t, err := parseFormTime(value)
	if err != nil {
		return value
	}
	return t.UTC().Format(inputTimeLayout)
}

func (f *EventForm) toModel() (*repository.Event, FormErrors) {
	errs := FormErrors{}
	start, err := parseFormTime(f.Start)
	if err != nil {
		errs["Start"] = "Start is not a valid date"
	}
	end, err := parseFormTime(f.End)
	if err != nil {
		errs["End"] = "End is not a valid date"
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &repository.Event{
		Id:    f.Id,
		Name:  f.Name,
		Start: start,
		End:   end,
		Place: f.Place,
	}, nil
}

func parseFormTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range formTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", value)
}

func toFormErrors(err error) FormErrors {
	errs := FormErrors{}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errs[fieldError.Field()] = validationMessage(fieldError)
		}
		return errs
	}
	errs["Form"] = "The submitted form could not be read"
	return errs
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldError.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fieldError.Field(), fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldError.Field())
	}
}

type EventResponse struct {
	Id    int       `json:"id"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Place string    `json:"place"`
}

func toEventResponse(event *repository.Event) EventResponse {
	return EventResponse{
		Id:    event.Id,
		Name:  event.Name,
		Start: event.Start,
		End:   event.End,
		Place: event.Place,
	}
}
