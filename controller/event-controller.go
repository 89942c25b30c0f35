package controller

import (
	"net/http"
	"strconv"

	"eventmi/app_error"
	"eventmi/repository"
	"eventmi/service"

	"github.com/gin-gonic/gin"
)

// EventController serves the html pages of the add, edit and delete flows.
// Successful mutations redirect to the listing, invalid input re-renders the form with 200.
type EventController struct {
	eventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

func setupEventController(eventService *service.EventService) []RouteInfo {
	e := NewEventController(eventService)
	basePath := "/Event"
	routes := []RouteInfo{
		{Method: "GET", Path: "/All", HandlerFunc: e.allHandler()},
		{Method: "GET", Path: "/Add", HandlerFunc: e.addFormHandler()},
		{Method: "POST", Path: "/Add", HandlerFunc: e.addHandler()},
		{Method: "GET", Path: "/Details/:id", HandlerFunc: e.detailsHandler()},
		{Method: "GET", Path: "/Edit/:id", HandlerFunc: e.editFormHandler()},
		{Method: "POST", Path: "/Edit/:id", HandlerFunc: e.editHandler()},
		{Method: "GET", Path: "/Delete/:id", HandlerFunc: e.deleteFormHandler()},
		{Method: "POST", Path: "/Delete/:id", HandlerFunc: e.deleteHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *EventController) allHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.eventService.GetAllEvents()
		if err != nil {
			renderError(c, err)
			return
		}
		c.HTML(http.StatusOK, "all.html", gin.H{"Title": "All events", "Events": events})
	}
}

func (e *EventController) addFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "add.html", gin.H{"Title": "Add event", "Form": EventForm{}, "Errors": FormErrors{}})
	}
}

func (e *EventController) addHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form EventForm
		errs := FormErrors{}
		if err := c.ShouldBind(&form); err != nil {
			errs = toFormErrors(err)
		}
		var event *repository.Event
		if len(errs) == 0 {
			event, errs = form.toModel()
		}
		if len(errs) == 0 {
			_, err := e.eventService.CreateEvent(c.Request.Context(), event)
			if validationError, ok := app_error.AsValidation(err); ok {
				errs = FormErrors{validationError.Field: validationError.Message}
			} else if err != nil {
				renderError(c, err)
				return
			}
		}
		if len(errs) > 0 {
			c.HTML(http.StatusOK, "add.html", gin.H{"Title": "Add event", "Form": form.forInput(), "Errors": errs})
			return
		}
		c.Redirect(http.StatusFound, "/Event/All")
	}
}

func (e *EventController) detailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := e.eventFromPath(c)
		if !ok {
			return
		}
		c.HTML(http.StatusOK, "details.html", gin.H{"Title": event.Name, "Event": event})
	}
}

func (e *EventController) editFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := e.eventFromPath(c)
		if !ok {
			return
		}
		c.HTML(http.StatusOK, "edit.html", gin.H{"Title": "Edit event", "Form": toEventForm(event), "Errors": FormErrors{}})
	}
}

func (e *EventController) editHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}
		// the submitted id has to name the event in the path before anything else is looked at
		formId, err := strconv.Atoi(c.PostForm("Id"))
		if err != nil || formId != eventId {
			renderNotFound(c)
			return
		}

		var form EventForm
		errs := FormErrors{}
		if err := c.ShouldBind(&form); err != nil {
			errs = toFormErrors(err)
		}
		form.Id = eventId
		var event *repository.Event
		if len(errs) == 0 {
			event, errs = form.toModel()
		}
		if len(errs) == 0 {
			_, err := e.eventService.UpdateEvent(c.Request.Context(), eventId, event)
			if validationError, ok := app_error.AsValidation(err); ok {
				errs = FormErrors{validationError.Field: validationError.Message}
			} else if err != nil {
				renderError(c, err)
				return
			}
		}
		if len(errs) > 0 {
			c.HTML(http.StatusOK, "edit.html", gin.H{"Title": "Edit event", "Form": form.forInput(), "Errors": errs})
			return
		}
		c.Redirect(http.StatusFound, "/Event/All")
	}
}

func (e *EventController) deleteFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, ok := e.eventFromPath(c)
		if !ok {
			return
		}
		c.HTML(http.StatusOK, "delete.html", gin.H{"Title": "Delete event", "Event": event})
	}
}

func (e *EventController) deleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			renderNotFound(c)
			return
		}
		if err := e.eventService.DeleteEvent(c.Request.Context(), eventId); err != nil {
			renderError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/Event/All")
	}
}

func (e *EventController) eventFromPath(c *gin.Context) (*repository.Event, bool) {
	eventId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return nil, false
	}
	event, err := e.eventService.GetEventById(eventId)
	if err != nil {
		renderError(c, err)
		return nil, false
	}
	return event, true
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Title": "Not found"})
}

func renderError(c *gin.Context, err error) {
	if app_error.IsNotFound(err) {
		renderNotFound(c)
		return
	}
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Error"})
}
