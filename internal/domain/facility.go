package domain

import "time"

// Building is the top of the facility hierarchy. Coordinates are native
// floats end-to-end; they are never stored or transported as strings.
type Building struct {
	ID        int64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID         int64
	BuildingID int64
	Name       string
	Floor      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Camera struct {
	ID        int64
	RoomID    int64
	Name      string
	StreamURL string
	IsOnline  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
