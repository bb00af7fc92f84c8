package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const buildingColumns = `id, name, address, latitude, longitude, created_at, updated_at`

type BuildingRepo struct {
	db *sql.DB
}

func NewBuildingRepo(db *sql.DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

func scanBuilding(row interface{ Scan(...any) error }) (domain.Building, error) {
	var b domain.Building
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Latitude, &b.Longitude, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BuildingRepo) Create(ctx context.Context, b domain.Building) (domain.Building, error) {
	if strings.TrimSpace(b.Name) == "" {
		return domain.Building{}, domain.ErrMissingField("name")
	}

	const q = `
INSERT INTO buildings (name, address, latitude, longitude)
VALUES ($1,$2,$3,$4)
RETURNING ` + buildingColumns + `;
`
	out, err := scanBuilding(r.db.QueryRowContext(ctx, q, b.Name, b.Address, b.Latitude, b.Longitude))
	if err != nil {
		return domain.Building{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BuildingRepo) GetByID(ctx context.Context, id int64) (domain.Building, error) {
	const q = `
SELECT ` + buildingColumns + `
FROM buildings
WHERE id = $1
LIMIT 1;
`
	out, err := scanBuilding(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Building{}, domain.ErrBuildingNotFound()
		}
		return domain.Building{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BuildingRepo) List(ctx context.Context) ([]domain.Building, error) {
	const q = `
SELECT ` + buildingColumns + `
FROM buildings
ORDER BY name, id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BuildingRepo) Update(ctx context.Context, b domain.Building) (domain.Building, error) {
	const q = `
UPDATE buildings
SET name = $2,
    address = $3,
    latitude = $4,
    longitude = $5,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + buildingColumns + `;
`
	out, err := scanBuilding(r.db.QueryRowContext(ctx, q, b.ID, b.Name, b.Address, b.Latitude, b.Longitude))
	if err != nil {
		if isNoRows(err) {
			return domain.Building{}, domain.ErrBuildingNotFound()
		}
		return domain.Building{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BuildingRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM buildings WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBuildingNotFound()
	}
	return nil
}
