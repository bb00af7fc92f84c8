package messaging

import (
	"context"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

/*
Persistence ports for the contact book, contact messages and per-user
notifications. Messages cascade when their contact goes away.
*/

type ContactRepo interface {
	Create(ctx context.Context, c domain.Contact) (domain.Contact, error)
	GetByID(ctx context.Context, id int64) (domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	Update(ctx context.Context, c domain.Contact) (domain.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type MessageRepo interface {
	Create(ctx context.Context, m domain.Message) (domain.Message, error)
	GetByID(ctx context.Context, id int64) (domain.Message, error)
	ListByContact(ctx context.Context, contactID int64) ([]domain.Message, error)
	Delete(ctx context.Context, id int64) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
	GetByID(ctx context.Context, id int64) (domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
