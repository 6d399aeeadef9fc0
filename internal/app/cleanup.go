package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotelbooking/internal/adapters/observability"
	"hotelbooking/internal/domain"
)

// CleanupService removes accounts that never completed verification
// within the TTL. It runs from a background schedule and shares the user
// store with foreground registration/verification/login; every write it
// races is designed to tolerate the row disappearing.
type CleanupService struct {
	users domain.UserRepository
	ttl   time.Duration
}

func NewCleanupService(users domain.UserRepository, ttl time.Duration) *CleanupService {
	return &CleanupService{users: users, ttl: ttl}
}

// Sweep deletes unverified users registered before now-ttl and returns
// how many were removed. Running twice in a row with no new
// registrations removes nothing the second time.
func (s *CleanupService) Sweep(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.ttl)
	removed, err := s.users.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	observability.ObserveSweep(removed)
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("swept unverified accounts")
	}
	return removed, nil
}
