package controller

import (
	"errors"
	"net/http"
	"strings"

	"eventmi/app_error"
	"eventmi/auth"
	"eventmi/service"
	"eventmi/utils"

	"github.com/gin-gonic/gin"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
}

// SetRoutes registers the HTML event pages and the admin query API on r.
func SetRoutes(r *gin.Engine, eventService *service.EventService, jwtSecret string) {
	r.SetHTMLTemplate(Templates())
	routes := []RouteInfo{
		{Method: "GET", Path: "/", HandlerFunc: func(c *gin.Context) { c.Redirect(http.StatusFound, "/Event/All") }},
	}
	routes = append(routes, setupEventController(eventService)...)
	routes = append(routes, setupAdminController(eventService)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(jwtSecret, route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, route.Path, handlerfuncs...)
	}
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		renderNotFound(c)
	})
}

func AuthMiddleware(jwtSecret string, roles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			app_error.Abort(c, app_error.Unauthenticated(errors.New("Unauthenticated")))
			return
		}
		claims, err := auth.ParseToken(jwtSecret, tokenString)
		if err != nil {
			app_error.Abort(c, app_error.Unauthenticated(errors.New("Unauthenticated")))
			return
		}
		if len(roles) > 0 && !utils.ContainsAny(claims.Permissions, roles) {
			app_error.Abort(c, app_error.Forbidden(errors.New("Unauthorized")))
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie("auth"); err == nil {
		return cookie
	}
	return ""
}
