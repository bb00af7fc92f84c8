package facility

import (
	"context"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// Service manages the monitored site topology: buildings, their rooms
// and the cameras mounted in them.
type Service struct {
	buildings BuildingRepo
	rooms     RoomRepo
	cameras   CameraRepo
}

func NewService(buildings BuildingRepo, rooms RoomRepo, cameras CameraRepo) *Service {
	return &Service{buildings: buildings, rooms: rooms, cameras: cameras}
}

// ---------- buildings ----------

type BuildingInput struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

func (in BuildingInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrMissingField("name")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return domain.ErrInvalidField("latitude", "must be within [-90, 90]")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return domain.ErrInvalidField("longitude", "must be within [-180, 180]")
	}
	return nil
}

func (s *Service) CreateBuilding(ctx context.Context, in BuildingInput) (domain.Building, error) {
	if err := in.validate(); err != nil {
		return domain.Building{}, err
	}
	return s.buildings.Create(ctx, domain.Building{
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	})
}

func (s *Service) GetBuilding(ctx context.Context, id int64) (domain.Building, error) {
	return s.buildings.GetByID(ctx, id)
}

func (s *Service) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	return s.buildings.List(ctx)
}

func (s *Service) UpdateBuilding(ctx context.Context, id int64, in BuildingInput) (domain.Building, error) {
	if err := in.validate(); err != nil {
		return domain.Building{}, err
	}
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return domain.Building{}, err
	}
	b.Name = strings.TrimSpace(in.Name)
	b.Address = strings.TrimSpace(in.Address)
	b.Latitude = in.Latitude
	b.Longitude = in.Longitude
	return s.buildings.Update(ctx, b)
}

func (s *Service) DeleteBuilding(ctx context.Context, id int64) error {
	// Rooms and cameras beneath it go with it (FK cascade).
	return s.buildings.Delete(ctx, id)
}

// ---------- rooms ----------

type RoomInput struct {
	BuildingID int64
	Name       string
	Floor      int
}

func (s *Service) CreateRoom(ctx context.Context, in RoomInput) (domain.Room, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Room{}, domain.ErrMissingField("name")
	}
	// the parent must exist; surfaces building_not_found instead of an
	// opaque FK violation
	if _, err := s.buildings.GetByID(ctx, in.BuildingID); err != nil {
		return domain.Room{}, err
	}
	return s.rooms.Create(ctx, domain.Room{
		BuildingID: in.BuildingID,
		Name:       strings.TrimSpace(in.Name),
		Floor:      in.Floor,
	})
}

func (s *Service) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, buildingID int64) ([]domain.Room, error) {
	if _, err := s.buildings.GetByID(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.rooms.ListByBuilding(ctx, buildingID)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, name string, floor int) (domain.Room, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Room{}, domain.ErrMissingField("name")
	}
	rm, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	rm.Name = strings.TrimSpace(name)
	rm.Floor = floor
	return s.rooms.Update(ctx, rm)
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	return s.rooms.Delete(ctx, id)
}

// ---------- cameras ----------

type CameraInput struct {
	RoomID    int64
	Name      string
	StreamURL string
}

func (s *Service) CreateCamera(ctx context.Context, in CameraInput) (domain.Camera, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Camera{}, domain.ErrMissingField("name")
	}
	if strings.TrimSpace(in.StreamURL) == "" {
		return domain.Camera{}, domain.ErrMissingField("stream_url")
	}
	if _, err := s.rooms.GetByID(ctx, in.RoomID); err != nil {
		return domain.Camera{}, err
	}
	return s.cameras.Create(ctx, domain.Camera{
		RoomID:    in.RoomID,
		Name:      strings.TrimSpace(in.Name),
		StreamURL: strings.TrimSpace(in.StreamURL),
		IsOnline:  false,
	})
}

func (s *Service) GetCamera(ctx context.Context, id int64) (domain.Camera, error) {
	return s.cameras.GetByID(ctx, id)
}

func (s *Service) ListCameras(ctx context.Context, roomID int64) ([]domain.Camera, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.cameras.ListByRoom(ctx, roomID)
}

func (s *Service) UpdateCamera(ctx context.Context, id int64, name, streamURL string) (domain.Camera, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Camera{}, domain.ErrMissingField("name")
	}
	if strings.TrimSpace(streamURL) == "" {
		return domain.Camera{}, domain.ErrMissingField("stream_url")
	}
	c, err := s.cameras.GetByID(ctx, id)
	if err != nil {
		return domain.Camera{}, err
	}
	c.Name = strings.TrimSpace(name)
	c.StreamURL = strings.TrimSpace(streamURL)
	return s.cameras.Update(ctx, c)
}

// SetCameraOnline records the camera's reachability as reported by the
// stream prober.
func (s *Service) SetCameraOnline(ctx context.Context, id int64, online bool) error {
	if _, err := s.cameras.GetByID(ctx, id); err != nil {
		return err
	}
	return s.cameras.SetOnline(ctx, id, online)
}

func (s *Service) DeleteCamera(ctx context.Context, id int64) error {
	return s.cameras.Delete(ctx, id)
}
