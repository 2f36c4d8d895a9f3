package memberships

import (
	"context"
	"errors"
	"time"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	"github.com/kenyagreatparty/kgp-backend/pkg/cache"
)

const (
	statsCacheKey = "memberships:stats:overview"
	statsCacheTTL = time.Minute
	topCountyCap  = 10
)

// Stats aggregates the dashboard overview. The result is cached briefly so a
// busy dashboard does not hammer the group-by queries.
func (m *Membership) Stats(ctx context.Context) (*dto.StatsOverview, error) {
	var cached dto.StatsOverview
	err := m.Cache.Get(ctx, statsCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		m.Logger.Warn().Err(err).Msg("stats cache read failed")
	}

	byStatus, err := m.ApplicationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	topCounties, err := m.ApplicationRepo.CountByCounty(ctx, topCountyCap)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := m.ApplicationRepo.CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	issued, err := m.SequenceRepo.Current(ctx, repository.SequenceMembershipNumber)
	if err != nil {
		return nil, err
	}

	overview := &dto.StatsOverview{
		Today:    today,
		Issued:   issued,
		ByStatus: make(map[dto.ApplicationStatus]int64, len(byStatus)),
	}
	for _, sc := range byStatus {
		status := dto.ApplicationStatus(sc.Status)
		overview.ByStatus[status] = sc.Count
		overview.Total += sc.Count

		switch status {
		case dto.ApplicationStatusApproved:
			overview.Approved = sc.Count
		case dto.ApplicationStatusPending:
			overview.Pending = sc.Count
		case dto.ApplicationStatusRejected:
			overview.Rejected = sc.Count
		}
	}
	for _, cc := range topCounties {
		overview.TopCounties = append(overview.TopCounties, dto.CountyCount{
			County: cc.County,
			Count:  cc.Count,
		})
	}

	if err := m.Cache.Set(ctx, statsCacheKey, overview, statsCacheTTL); err != nil {
		m.Logger.Warn().Err(err).Msg("stats cache write failed")
	}

	return overview, nil
}
