package messaging

import (
	"context"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// Service manages site contacts, the messages filed against them and
// per-user notifications (login alerts, system events).
type Service struct {
	contacts      ContactRepo
	messages      MessageRepo
	notifications NotificationRepo
}

func NewService(contacts ContactRepo, messages MessageRepo, notifications NotificationRepo) *Service {
	return &Service{contacts: contacts, messages: messages, notifications: notifications}
}

// ---------- contacts ----------

type ContactInput struct {
	Name  string
	Email string
	Phone string
}

func (in ContactInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrMissingField("name")
	}
	if strings.TrimSpace(in.Email) == "" && strings.TrimSpace(in.Phone) == "" {
		return domain.ErrInvalidField("email", "a contact needs an email or a phone number")
	}
	return nil
}

func (s *Service) CreateContact(ctx context.Context, in ContactInput) (domain.Contact, error) {
	if err := in.validate(); err != nil {
		return domain.Contact{}, err
	}
	return s.contacts.Create(ctx, domain.Contact{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.ToLower(strings.TrimSpace(in.Email)),
		Phone: strings.TrimSpace(in.Phone),
	})
}

func (s *Service) GetContact(ctx context.Context, id int64) (domain.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}

func (s *Service) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *Service) UpdateContact(ctx context.Context, id int64, in ContactInput) (domain.Contact, error) {
	if err := in.validate(); err != nil {
		return domain.Contact{}, err
	}
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return domain.Contact{}, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = strings.TrimSpace(in.Phone)
	return s.contacts.Update(ctx, c)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	// Messages filed against the contact cascade in the store.
	return s.contacts.Delete(ctx, id)
}

// ---------- messages ----------

type MessageInput struct {
	ContactID int64
	Subject   string
	Body      string
}

func (s *Service) CreateMessage(ctx context.Context, in MessageInput) (domain.Message, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return domain.Message{}, domain.ErrMissingField("subject")
	}
	if strings.TrimSpace(in.Body) == "" {
		return domain.Message{}, domain.ErrMissingField("body")
	}
	if _, err := s.contacts.GetByID(ctx, in.ContactID); err != nil {
		return domain.Message{}, err
	}
	return s.messages.Create(ctx, domain.Message{
		ContactID: in.ContactID,
		Subject:   strings.TrimSpace(in.Subject),
		Body:      in.Body,
	})
}

func (s *Service) ListMessages(ctx context.Context, contactID int64) ([]domain.Message, error) {
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		return nil, err
	}
	return s.messages.ListByContact(ctx, contactID)
}

func (s *Service) DeleteMessage(ctx context.Context, id int64) error {
	return s.messages.Delete(ctx, id)
}

// ---------- notifications ----------

type NotificationInput struct {
	UserID int64
	Title  string
	Body   string
}

func (s *Service) CreateNotification(ctx context.Context, in NotificationInput) (domain.Notification, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Notification{}, domain.ErrMissingField("title")
	}
	return s.notifications.Create(ctx, domain.Notification{
		UserID: in.UserID,
		Title:  strings.TrimSpace(in.Title),
		Body:   in.Body,
		IsRead: false,
	})
}

func (s *Service) ListNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkNotificationRead is scoped to the owner: a user cannot ack
// another user's notification.
func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrNotificationNotFound()
	}
	if n.IsRead {
		return nil
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

func (s *Service) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrNotificationNotFound()
	}
	return s.notifications.Delete(ctx, notificationID)
}
