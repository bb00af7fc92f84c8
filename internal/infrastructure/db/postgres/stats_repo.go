package postgres

import (
	"context"
	"database/sql"

	"github.com/sitewatch/sitewatch-backend/internal/application/dashboard"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// StatsRepo aggregates dashboard counters in one round-trip.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Counts(ctx context.Context) (dashboard.Summary, error) {
	const q = `
SELECT
	(SELECT COUNT(1) FROM users),
	(SELECT COUNT(1) FROM users WHERE is_active),
	(SELECT COUNT(1) FROM buildings),
	(SELECT COUNT(1) FROM rooms),
	(SELECT COUNT(1) FROM cameras),
	(SELECT COUNT(1) FROM cameras WHERE is_online),
	(SELECT COUNT(1) FROM contacts);
`
	var sum dashboard.Summary
	err := r.db.QueryRowContext(ctx, q).Scan(
		&sum.Users,
		&sum.ActiveUsers,
		&sum.Buildings,
		&sum.Rooms,
		&sum.Cameras,
		&sum.CamerasOnline,
		&sum.Contacts,
	)
	if err != nil {
		return dashboard.Summary{}, domain.ErrDBUnavailable(err)
	}
	return sum, nil
}
