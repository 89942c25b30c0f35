package controller

import (
	"net/http"
	"strconv"

	"eventmi/app_error"
	"eventmi/auth"
	"eventmi/repository"
	"eventmi/service"
	"eventmi/utils"

	"github.com/gin-gonic/gin"
)

// AdminController exposes read-only event queries for tooling that must not
// talk to the database directly.
type AdminController struct {
	eventService *service.EventService
}

func NewAdminController(eventService *service.EventService) *AdminController {
	return &AdminController{
		eventService: eventService,
	}
}

func setupAdminController(eventService *service.EventService) []RouteInfo {
	e := NewAdminController(eventService)
	basePath := "/api/events"
	adminOnly := []string{auth.PermissionAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getEventsHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "GET", Path: "/:event_id", HandlerFunc: e.getEventHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id GetEvents
// @Description Fetches all events, optionally only those with exactly the given name
// @Tags event
// @Produce json
// @Param name query string false "Exact event name"
// @Success 200 {array} EventResponse
// @Security BearerAuth
// @Router /events [get]
func (e *AdminController) getEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var events []*repository.Event
		var err error
		if name, ok := c.GetQuery("name"); ok {
			events, err = e.eventService.GetEventsByName(name)
		} else {
			events, err = e.eventService.GetAllEvents()
		}
		if err != nil {
			app_error.WithHTTPStatus(c, err, http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, utils.Map(events, toEventResponse))
	}
}

// @id GetEvent
// @Description Gets an event by id
// @Tags event
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{event_id} [get]
func (e *AdminController) getEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, err := strconv.Atoi(c.Param("event_id"))
		if err != nil {
			app_error.WithHTTPStatus(c, err, http.StatusBadRequest)
			return
		}
		event, err := e.eventService.GetEventById(eventId)
		if err != nil {
			if app_error.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			} else {
				app_error.WithHTTPStatus(c, err, http.StatusInternalServerError)
			}
			return
		}
		c.JSON(http.StatusOK, toEventResponse(event))
	}
}
