package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const roomColumns = `id, building_id, name, floor, created_at, updated_at`

type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func scanRoom(row interface{ Scan(...any) error }) (domain.Room, error) {
	var rm domain.Room
	err := row.Scan(&rm.ID, &rm.BuildingID, &rm.Name, &rm.Floor, &rm.CreatedAt, &rm.UpdatedAt)
	return rm, err
}

func (r *RoomRepo) Create(ctx context.Context, rm domain.Room) (domain.Room, error) {
	if strings.TrimSpace(rm.Name) == "" {
		return domain.Room{}, domain.ErrMissingField("name")
	}

	const q = `
INSERT INTO rooms (building_id, name, floor)
VALUES ($1,$2,$3)
RETURNING ` + roomColumns + `;
`
	out, err := scanRoom(r.db.QueryRowContext(ctx, q, rm.BuildingID, rm.Name, rm.Floor))
	if err != nil {
		if strings.Contains(err.Error(), "23503") {
			return domain.Room{}, domain.ErrBuildingNotFound()
		}
		return domain.Room{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id int64) (domain.Room, error) {
	const q = `
SELECT ` + roomColumns + `
FROM rooms
WHERE id = $1
LIMIT 1;
`
	out, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Room{}, domain.ErrRoomNotFound()
		}
		return domain.Room{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *RoomRepo) ListByBuilding(ctx context.Context, buildingID int64) ([]domain.Room, error) {
	const q = `
SELECT ` + roomColumns + `
FROM rooms
WHERE building_id = $1
ORDER BY floor, name, id;
`
	rows, err := r.db.QueryContext(ctx, q, buildingID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *RoomRepo) Update(ctx context.Context, rm domain.Room) (domain.Room, error) {
	const q = `
UPDATE rooms
SET name = $2,
    floor = $3,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + roomColumns + `;
`
	out, err := scanRoom(r.db.QueryRowContext(ctx, q, rm.ID, rm.Name, rm.Floor))
	if err != nil {
		if isNoRows(err) {
			return domain.Room{}, domain.ErrRoomNotFound()
		}
		return domain.Room{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM rooms WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrRoomNotFound()
	}
	return nil
}
