package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewatch/sitewatch-backend/internal/application/messaging"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/dto"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
)

func newMessagingRouter(t *testing.T) (chi.Router, *fakeNotificationRepo) {
	t.Helper()

	notifications := newFakeNotificationRepo()
	h := NewMessagingHandler(messaging.NewService(newFakeContactRepo(), newFakeMessageRepo(), notifications))

	r := chi.NewRouter()
	r.Post("/contacts", h.CreateContact)
	r.Get("/contacts/{id}", h.GetContact)
	r.Post("/contacts/{contactID}/messages", h.CreateMessage)
	r.Get("/contacts/{contactID}/messages", h.ListMessages)
	r.Get("/notifications", h.ListMyNotifications)
	r.Post("/notifications/{id}/read", h.MarkNotificationRead)
	r.Delete("/notifications/{id}", h.DeleteNotification)
	r.Post("/admin/notifications", h.CreateNotification)
	return r, notifications
}

func doJSONAs(t *testing.T, h http.Handler, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "USER"))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateContact(t *testing.T) {
	r, _ := newMessagingRouter(t)

	t.Run("needs email or phone", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodPost, "/contacts", 0, map[string]any{"name": "Guard Desk"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_field", errCode(t, rec))
	})

	t.Run("email is normalized", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodPost, "/contacts", 0, map[string]any{
			"name":  "Guard Desk",
			"email": "Guards@Example.COM",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var v dto.ContactView
		decodeData(t, rec, &v)
		assert.Equal(t, "guards@example.com", v.Email)
	})
}

func TestMessagesRequireExistingContact(t *testing.T) {
	r, _ := newMessagingRouter(t)

	rec := doJSONAs(t, r, http.MethodPost, "/contacts/12/messages", 0, map[string]any{
		"subject": "Gate stuck",
		"body":    "East gate does not close.",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "contact_not_found", errCode(t, rec))

	rec = doJSONAs(t, r, http.MethodPost, "/contacts", 0, map[string]any{
		"name": "Maintenance", "phone": "555-0101",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSONAs(t, r, http.MethodPost, "/contacts/1/messages", 0, map[string]any{
		"subject": "Gate stuck",
		"body":    "East gate does not close.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSONAs(t, r, http.MethodGet, "/contacts/1/messages", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []dto.MessageView
	decodeData(t, rec, &msgs)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Gate stuck", msgs[0].Subject)
}

func TestNotificationsAreOwnerScoped(t *testing.T) {
	r, notifications := newMessagingRouter(t)

	seed, err := notifications.Create(context.Background(), domain.Notification{
		UserID: 7,
		Title:  "Camera offline",
	})
	require.NoError(t, err)

	t.Run("only the owner sees it", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodGet, "/notifications", 7, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var mine []dto.NotificationView
		decodeData(t, rec, &mine)
		assert.Len(t, mine, 1)

		rec = doJSONAs(t, r, http.MethodGet, "/notifications", 8, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var theirs []dto.NotificationView
		decodeData(t, rec, &theirs)
		assert.Empty(t, theirs)
	})

	t.Run("cross-user ack looks like not found", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodPost, "/notifications/1/read", 8, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "notification_not_found", errCode(t, rec))
		assert.False(t, notifications.items[seed.ID].IsRead)
	})

	t.Run("owner ack is idempotent", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodPost, "/notifications/1/read", 7, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, notifications.items[seed.ID].IsRead)

		rec = doJSONAs(t, r, http.MethodPost, "/notifications/1/read", 7, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cross-user delete refused, owner delete works", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodDelete, "/notifications/1", 8, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSONAs(t, r, http.MethodDelete, "/notifications/1", 7, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("no identity in context", func(t *testing.T) {
		rec := doJSONAs(t, r, http.MethodGet, "/notifications", 0, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminCreateNotification(t *testing.T) {
	r, notifications := newMessagingRouter(t)

	rec := doJSONAs(t, r, http.MethodPost, "/admin/notifications", 1, map[string]any{
		"user_id": 42,
		"title":   "Maintenance window",
		"body":    "Cameras reboot at 02:00.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var v dto.NotificationView
	decodeData(t, rec, &v)
	assert.Equal(t, int64(42), v.UserID)
	assert.False(t, v.IsRead)
	assert.Len(t, notifications.items, 1)

	rec = doJSONAs(t, r, http.MethodPost, "/admin/notifications", 1, map[string]any{
		"title": "No target user",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_field", errCode(t, rec))
}
