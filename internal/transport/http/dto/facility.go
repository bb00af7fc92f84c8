package dto

import (
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// -------- Requests --------

type BuildingRequest struct {
	Name      string  `json:"name" validate:"required"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (r *BuildingRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return checkStruct(r)
}

type RoomRequest struct {
	Name  string `json:"name" validate:"required"`
	Floor int    `json:"floor"`
}

func (r *RoomRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return checkStruct(r)
}

type CameraRequest struct {
	Name      string `json:"name" validate:"required"`
	StreamURL string `json:"stream_url" validate:"required,uri"`
}

func (r *CameraRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.StreamURL = strings.TrimSpace(r.StreamURL)
	return checkStruct(r)
}

type CameraStatusRequest struct {
	IsOnline *bool `json:"is_online" validate:"required"`
}

func (r *CameraStatusRequest) Validate() error {
	return checkStruct(r)
}

// -------- Views --------

type BuildingView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBuildingView(b domain.Building) BuildingView {
	return BuildingView{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewBuildingViews(bs []domain.Building) []BuildingView {
	out := make([]BuildingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBuildingView(b))
	}
	return out
}

type RoomView struct {
	ID         int64     `json:"id"`
	BuildingID int64     `json:"building_id"`
	Name       string    `json:"name"`
	Floor      int       `json:"floor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRoomView(rm domain.Room) RoomView {
	return RoomView{
		ID:         rm.ID,
		BuildingID: rm.BuildingID,
		Name:       rm.Name,
		Floor:      rm.Floor,
		CreatedAt:  rm.CreatedAt,
		UpdatedAt:  rm.UpdatedAt,
	}
}

func NewRoomViews(rms []domain.Room) []RoomView {
	out := make([]RoomView, 0, len(rms))
	for _, rm := range rms {
		out = append(out, NewRoomView(rm))
	}
	return out
}

type CameraView struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	Name      string    `json:"name"`
	StreamURL string    `json:"stream_url"`
	IsOnline  bool      `json:"is_online"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCameraView(c domain.Camera) CameraView {
	return CameraView{
		ID:        c.ID,
		RoomID:    c.RoomID,
		Name:      c.Name,
		StreamURL: c.StreamURL,
		IsOnline:  c.IsOnline,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCameraViews(cs []domain.Camera) []CameraView {
	out := make([]CameraView, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCameraView(c))
	}
	return out
}
