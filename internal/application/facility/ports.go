package facility

import (
	"context"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

/*
Persistence ports for the building -> room -> camera hierarchy.
Deletes cascade in the store; every update refreshes updated_at.
*/

type BuildingRepo interface {
	Create(ctx context.Context, b domain.Building) (domain.Building, error)
	GetByID(ctx context.Context, id int64) (domain.Building, error)
	List(ctx context.Context) ([]domain.Building, error)
	Update(ctx context.Context, b domain.Building) (domain.Building, error)
	Delete(ctx context.Context, id int64) error
}

type RoomRepo interface {
	Create(ctx context.Context, rm domain.Room) (domain.Room, error)
	GetByID(ctx context.Context, id int64) (domain.Room, error)
	ListByBuilding(ctx context.Context, buildingID int64) ([]domain.Room, error)
	Update(ctx context.Context, rm domain.Room) (domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

type CameraRepo interface {
	Create(ctx context.Context, c domain.Camera) (domain.Camera, error)
	GetByID(ctx context.Context, id int64) (domain.Camera, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Camera, error)
	Update(ctx context.Context, c domain.Camera) (domain.Camera, error)
	SetOnline(ctx context.Context, id int64, online bool) error
	Delete(ctx context.Context, id int64) error
}
