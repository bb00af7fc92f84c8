package dto

import (
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// -------- Requests --------

type ContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	return checkStruct(r)
}

type MessageRequest struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (r *MessageRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	return checkStruct(r)
}

type NotificationRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body,omitempty"`
}

func (r *NotificationRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return checkStruct(r)
}

// -------- Views --------

type ContactView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContactView(c domain.Contact) ContactView {
	return ContactView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewContactViews(cs []domain.Contact) []ContactView {
	out := make([]ContactView, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewContactView(c))
	}
	return out
}

type MessageView struct {
	ID        int64     `json:"id"`
	ContactID int64     `json:"contact_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMessageView(m domain.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		ContactID: m.ContactID,
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewMessageViews(ms []domain.Message) []MessageView {
	out := make([]MessageView, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMessageView(m))
	}
	return out
}

type NotificationView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewNotificationView(n domain.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewNotificationViews(ns []domain.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		out = append(out, NewNotificationView(n))
	}
	return out
}
