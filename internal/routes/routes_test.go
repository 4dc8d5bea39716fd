package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventmngt/eventapi/internal/container"
	"github.com/eventmngt/eventapi/internal/notify"
	"github.com/eventmngt/eventapi/internal/routes"
	"github.com/eventmngt/eventapi/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t      *testing.T
	router *gin.Engine
	c      *container.Container
}

func newAPI(t *testing.T) *api {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := container.NewContainer(logger, testutil.OpenDB(t), nil, notify.NopPublisher{}, container.Options{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
	return &api{t: t, router: routes.SetupRoutes(c), c: c}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// register creates an account through the API and logs it in.
func (a *api) register(role, email string) (uint, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/register/", "", map[string]any{
		"name": "Test " + role, "email": email, "password": "secret123", "role": role,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return a.login(email, "secret123")
}

func (a *api) login(email, password string) (uint, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/login/", "", map[string]any{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	body := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}](a.t, w)
	require.NotEmpty(a.t, body.Token)
	return body.User.ID, body.Token
}

func (a *api) admin() string {
	a.t.Helper()
	_, err := a.c.UserService.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "adminpass1")
	require.NoError(a.t, err)
	_, token := a.login("admin@example.com", "adminpass1")
	return token
}

func eventPayload(organizer uint, title string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  "An evening of talks",
		"organizer":    organizer,
		"category":     "technology",
		"start_date":   "2030-09-01",
		"start_time":   "18:00",
		"end_date":     "2030-09-01",
		"end_time":     "21:30",
		"ticket_price": "15.50",
		"capacity":     120,
	}
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/register/", "", map[string]any{
		"name": "Ayesha", "email": "ayesha@Example.COM", "password": "secret123", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Customer registered successfully!", decode[map[string]any](t, w)["message"])

	w = a.do(http.MethodPost, "/api/register/", "", map[string]any{
		"name": "Ayesha", "email": "ayesha@example.com", "password": "secret123", "role": "customer",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Errors, "email")

	w = a.do(http.MethodPost, "/api/login/", "", map[string]any{"email": "ayesha@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	id, token := a.login("ayesha@example.com", "secret123")

	w = a.do(http.MethodGet, "/api/me/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[map[string]any](t, w)
	assert.EqualValues(t, id, profile["id"])
	assert.Equal(t, "ayesha@example.com", profile["email"])

	w = a.do(http.MethodPost, "/api/logout/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/me/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logging out twice is harmless
	w = a.do(http.MethodPost, "/api/logout/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginSetsCookie(t *testing.T) {
	a := newAPI(t)
	a.register("organizer", "org@example.com")

	w := a.do(http.MethodPost, "/api/login/", "", map[string]any{"email": "org@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "access_token" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/me/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuspendedUserLosesAccess(t *testing.T) {
	a := newAPI(t)
	adminToken := a.admin()
	customerID, customerToken := a.register("customer", "c@example.com")

	w := a.do(http.MethodPatch, fmt.Sprintf("/api/users/%d/status/", customerID), customerToken, map[string]any{"status": "suspended"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/users/%d/status/", customerID), adminToken, map[string]any{"status": "suspended"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "suspended", decode[map[string]any](t, w)["status"])

	w = a.do(http.MethodGet, "/api/me/", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/login/", "", map[string]any{"email": "c@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/users/%d/", customerID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/users/%d/", customerID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventEndpoints(t *testing.T) {
	a := newAPI(t)
	orgID, orgToken := a.register("organizer", "org@example.com")
	_, customerToken := a.register("customer", "cust@example.com")

	w := a.do(http.MethodPost, "/events/create/", "", eventPayload(orgID, "GoLahore"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/events/create/", customerToken, eventPayload(orgID, "GoLahore"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/events/create/", orgToken, eventPayload(orgID, "GoLahore"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, "15.50", created["ticket_price"])
	assert.Equal(t, "upcoming", created["status"])
	assert.Nil(t, created["venue"])
	id := uint(created["id"].(float64))

	w = a.do(http.MethodPost, "/events/create/", orgToken, eventPayload(orgID, "GoLahore"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Errors, "non_field_errors")

	bad := eventPayload(orgID, "Typed")
	bad["capacity"] = "abc"
	w = a.do(http.MethodPost, "/events/create/", orgToken, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Incorrect type."}, decode[errorBody](t, w).Errors["capacity"])

	w = a.do(http.MethodPost, "/events/create/", orgToken, `{"title":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Errors, "non_field_errors")

	w = a.do(http.MethodGet, "/events/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = a.do(http.MethodGet, fmt.Sprintf("/events/%d/", id), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/events/9999/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodGet, "/events/abc/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPatch, fmt.Sprintf("/events/partial/%d/", id), orgToken, map[string]any{"capacity": 80})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 80, decode[map[string]any](t, w)["capacity"])

	w = a.do(http.MethodPut, fmt.Sprintf("/events/update/%d/", id), orgToken, map[string]any{"capacity": 80})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Errors, "title")

	w = a.do(http.MethodDelete, fmt.Sprintf("/events/delete/%d/", id), orgToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodDelete, fmt.Sprintf("/events/delete/%d/", id), orgToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVenueEndpoints(t *testing.T) {
	a := newAPI(t)
	_, orgToken := a.register("organizer", "org@example.com")

	w := a.do(http.MethodPost, "/venues/create/", orgToken, map[string]any{"name": "pc", "address": "Shahrah-e-Quaid-e-Azam", "capacity": 400})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint(decode[map[string]any](t, w)["id"].(float64))

	w = a.do(http.MethodGet, "/venues/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = a.do(http.MethodDelete, fmt.Sprintf("/venues/delete/%d/", id), orgToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodPatch, fmt.Sprintf("/venues/partial/%d/", id), orgToken, map[string]any{"capacity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingPaymentReviewFlow(t *testing.T) {
	a := newAPI(t)
	orgID, orgToken := a.register("organizer", "org@example.com")
	_, customerToken := a.register("customer", "cust@example.com")
	_, otherToken := a.register("customer", "other@example.com")

	w := a.do(http.MethodPost, "/events/create/", orgToken, eventPayload(orgID, "Concert"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	eventID := uint(decode[map[string]any](t, w)["id"].(float64))

	w = a.do(http.MethodGet, "/bookings/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/bookings/create/", customerToken, map[string]any{"event": eventID, "tickets_reserved": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := uint(decode[map[string]any](t, w)["id"].(float64))

	w = a.do(http.MethodPost, "/bookings/create/", customerToken, map[string]any{"event": eventID, "tickets_reserved": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Errors, "non_field_errors")

	w = a.do(http.MethodGet, "/bookings/", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))
	w = a.do(http.MethodGet, "/bookings/", orgToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = a.do(http.MethodPost, "/payments/create/", customerToken, map[string]any{"booking": bookingID, "method": "paypal"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "31.00", decode[map[string]any](t, w)["amount"])

	w = a.do(http.MethodPost, "/reviews/create/", otherToken, map[string]any{"booking": bookingID, "rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(http.MethodPost, "/reviews/create/", customerToken, map[string]any{"booking": bookingID, "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/reviews/?event=%d", eventID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = a.do(http.MethodGet, "/reviews/?event=x", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"A valid integer is required."}, decode[errorBody](t, w).Errors["event"])

	w = a.do(http.MethodPost, fmt.Sprintf("/bookings/confirm/%d/", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, fmt.Sprintf("/bookings/cancel/%d/", bookingID), customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode[map[string]any](t, w)["status"])

	w = a.do(http.MethodPost, fmt.Sprintf("/bookings/cancel/%d/", bookingID), customerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/bookings/cancel/9999/", customerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
