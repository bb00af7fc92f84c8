package handlers

import (
	"net/http"

	"github.com/sitewatch/sitewatch-backend/internal/application/messaging"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/dto"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
)

type MessagingHandler struct {
	svc *messaging.Service
}

func NewMessagingHandler(svc *messaging.Service) *MessagingHandler {
	return &MessagingHandler{svc: svc}
}

// ---------- contacts ----------

func (h *MessagingHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateContact(r.Context(), messaging.ContactInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewContactView(c))
}

func (h *MessagingHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListContacts(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewContactViews(cs))
}

func (h *MessagingHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	c, err := h.svc.GetContact(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewContactView(c))
}

func (h *MessagingHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.ContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateContact(r.Context(), id, messaging.ContactInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewContactView(c))
}

func (h *MessagingHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteContact(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---------- messages ----------

func (h *MessagingHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	contactID, err := idParam(r, "contactID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.MessageRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	m, err := h.svc.CreateMessage(r.Context(), messaging.MessageInput{
		ContactID: contactID,
		Subject:   req.Subject,
		Body:      req.Body,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewMessageView(m))
}

func (h *MessagingHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	contactID, err := idParam(r, "contactID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	ms, err := h.svc.ListMessages(r.Context(), contactID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewMessageViews(ms))
}

func (h *MessagingHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteMessage(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---------- notifications (scoped to the authenticated user) ----------

func (h *MessagingHandler) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}
	ns, err := h.svc.ListNotifications(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewNotificationViews(ns))
}

func (h *MessagingHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.MarkNotificationRead(r.Context(), userID, id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.MessageData{Message: "notification marked as read"})
}

func (h *MessagingHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteNotification(r.Context(), userID, id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// CreateNotification is admin-facing: push a notification to a user.
func (h *MessagingHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.NotificationRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	n, err := h.svc.CreateNotification(r.Context(), messaging.NotificationInput{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewNotificationView(n))
}
