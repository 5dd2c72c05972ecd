package service

import (
	"context"
	"fmt"

	"hindipath/internal/badges"
	"hindipath/internal/database"
	"hindipath/internal/models"
	"hindipath/internal/repository"
)

// BadgeService awards badges. Evaluation always recomputes from the stored
// counters, so calling it again after any write is safe.
type BadgeService struct {
	repo    *repository.BadgeRepository
	catalog *badges.Catalog
}

// NewBadgeService creates a badge service over db
func NewBadgeService(db database.DBTX, catalog *badges.Catalog) *BadgeService {
	return &BadgeService{repo: repository.NewBadgeRepository(db), catalog: catalog}
}

// Catalog returns the badge catalog the service awards from
func (s *BadgeService) Catalog() *badges.Catalog {
	return s.catalog
}

// Evaluate awards every counter badge the user now qualifies for and returns
// the ones granted by this call, in rule order
func (s *BadgeService) Evaluate(ctx context.Context, userID int64) ([]models.Badge, error) {
	c, err := s.repo.Counters(ctx, userID)
	if err != nil {
		return nil, err
	}

	qualified := badges.Qualified(badges.Counters{
		DistinctWords:    c.DistinctWords,
		CompletedLessons: c.CompletedLessons,
		UserTurns:        c.UserTurns,
	})

	var earned []string
	for _, id := range qualified {
		isNew, err := s.repo.Award(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if isNew {
			earned = append(earned, id)
		}
	}
	return s.catalog.Lookup(earned), nil
}

// Award grants a single badge and reports whether it was new
func (s *BadgeService) Award(ctx context.Context, userID int64, badgeID string) (bool, error) {
	if _, ok := s.catalog.Get(badgeID); !ok {
		return false, fmt.Errorf("unknown badge %q", badgeID)
	}
	return s.repo.Award(ctx, userID, badgeID)
}

// Earned returns the user's badges in the order they were earned. Awards
// whose id is no longer in the catalog are skipped.
func (s *BadgeService) Earned(ctx context.Context, userID int64) ([]models.EarnedBadge, error) {
	awards, err := s.repo.ListAwards(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make([]models.EarnedBadge, 0, len(awards))
	for _, a := range awards {
		if b, ok := s.catalog.Get(a.BadgeID); ok {
			earned = append(earned, models.EarnedBadge{Badge: b, EarnedAt: a.EarnedAt})
		}
	}
	return earned, nil
}
