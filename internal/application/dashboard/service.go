package dashboard

import (
	"context"
)

// Summary is the landing-page counter block: fleet size and health at
// a glance.
type Summary struct {
	Users          int64 `json:"users"`
	ActiveUsers    int64 `json:"active_users"`
	Buildings      int64 `json:"buildings"`
	Rooms          int64 `json:"rooms"`
	Cameras        int64 `json:"cameras"`
	CamerasOnline  int64 `json:"cameras_online"`
	CamerasOffline int64 `json:"cameras_offline"`
	Contacts       int64 `json:"contacts"`
}

// StatsRepo aggregates the counts in the store; a single round-trip
// rather than one query per entity.
type StatsRepo interface {
	Counts(ctx context.Context) (Summary, error)
}

type Service struct {
	stats StatsRepo
}

func NewService(stats StatsRepo) *Service {
	return &Service{stats: stats}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	sum, err := s.stats.Counts(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.CamerasOffline = sum.Cameras - sum.CamerasOnline
	return sum, nil
}
