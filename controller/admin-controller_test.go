package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventmi/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorizedGet(t *testing.T, r http.Handler, path string, permissions []string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.CreateToken(testSecret, "test", permissions, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminApiRequiresToken(t *testing.T) {
	r, _ := setUp()

	rec := get(r, "/api/events")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthenticated"}`, rec.Body.String())
}

func TestAdminApiRequiresAdminPermission(t *testing.T) {
	r, _ := setUp()

	rec := authorizedGet(t, r, "/api/events", []string{"viewer"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminApiAcceptsAuthCookie(t *testing.T) {
	r, _ := setUp()
	token, err := auth.CreateToken(testSecret, "test", []string{auth.PermissionAdmin}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminListEvents(t *testing.T) {
	r, _ := setUp()

	rec := authorizedGet(t, r, "/api/events", []string{auth.PermissionAdmin})
	require.Equal(t, http.StatusOK, rec.Code)

	var events []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Len(t, events, 3)
}

func TestAdminListEventsByName(t *testing.T) {
	r, _ := setUp()

	rec := authorizedGet(t, r, "/api/events?name=Fixture%2012", []string{auth.PermissionAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	var events []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, 12, events[0].Id)

	rec = authorizedGet(t, r, "/api/events?name=missing", []string{auth.PermissionAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAdminGetEvent(t *testing.T) {
	r, _ := setUp()

	rec := authorizedGet(t, r, "/api/events/8", []string{auth.PermissionAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":8,"name":"Fixture 8","start":"2024-05-02T09:00:00Z","end":"2024-05-02T12:00:00Z","place":"Somewhere"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, authorizedGet(t, r, "/api/events/0", []string{auth.PermissionAdmin}).Code)
	assert.Equal(t, http.StatusBadRequest, authorizedGet(t, r, "/api/events/abc", []string{auth.PermissionAdmin}).Code)
}
