package domain

import "time"

type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is correspondence attached to a contact.
type Message struct {
	ID        int64
	ContactID int64
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Notification is a per-user panel notification (e.g. the login notice
// created after a successful sign-in).
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
