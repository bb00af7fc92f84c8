package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const cameraColumns = `id, room_id, name, stream_url, is_online, created_at, updated_at`

type CameraRepo struct {
	db *sql.DB
}

func NewCameraRepo(db *sql.DB) *CameraRepo {
	return &CameraRepo{db: db}
}

func scanCamera(row interface{ Scan(...any) error }) (domain.Camera, error) {
	var c domain.Camera
	err := row.Scan(&c.ID, &c.RoomID, &c.Name, &c.StreamURL, &c.IsOnline, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CameraRepo) Create(ctx context.Context, c domain.Camera) (domain.Camera, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Camera{}, domain.ErrMissingField("name")
	}
	if strings.TrimSpace(c.StreamURL) == "" {
		return domain.Camera{}, domain.ErrMissingField("stream_url")
	}

	const q = `
INSERT INTO cameras (room_id, name, stream_url, is_online)
VALUES ($1,$2,$3,$4)
RETURNING ` + cameraColumns + `;
`
	out, err := scanCamera(r.db.QueryRowContext(ctx, q, c.RoomID, c.Name, c.StreamURL, c.IsOnline))
	if err != nil {
		if strings.Contains(err.Error(), "23503") {
			return domain.Camera{}, domain.ErrRoomNotFound()
		}
		return domain.Camera{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CameraRepo) GetByID(ctx context.Context, id int64) (domain.Camera, error) {
	const q = `
SELECT ` + cameraColumns + `
FROM cameras
WHERE id = $1
LIMIT 1;
`
	out, err := scanCamera(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Camera{}, domain.ErrCameraNotFound()
		}
		return domain.Camera{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CameraRepo) ListByRoom(ctx context.Context, roomID int64) ([]domain.Camera, error) {
	const q = `
SELECT ` + cameraColumns + `
FROM cameras
WHERE room_id = $1
ORDER BY name, id;
`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Camera{}
	for rows.Next() {
		c, err := scanCamera(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CameraRepo) Update(ctx context.Context, c domain.Camera) (domain.Camera, error) {
	const q = `
UPDATE cameras
SET name = $2,
    stream_url = $3,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + cameraColumns + `;
`
	out, err := scanCamera(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.StreamURL))
	if err != nil {
		if isNoRows(err) {
			return domain.Camera{}, domain.ErrCameraNotFound()
		}
		return domain.Camera{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CameraRepo) SetOnline(ctx context.Context, id int64, online bool) error {
	const q = `
UPDATE cameras
SET is_online = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, online)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCameraNotFound()
	}
	return nil
}

func (r *CameraRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM cameras WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCameraNotFound()
	}
	return nil
}
