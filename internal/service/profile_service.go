package service

import (
	"context"
	"fmt"

	"hindipath/internal/apperr"
	"hindipath/internal/badges"
	"hindipath/internal/models"
	"hindipath/internal/repository"
)

// SettingsUpdate carries the preference fields a request supplied
type SettingsUpdate struct {
	MyLang     *string
	TeachLevel *string
	Onboarded  *bool
}

// ProfileService handles learner preferences
type ProfileService struct {
	userRepo *repository.UserRepository
	badges   *BadgeService
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo *repository.UserRepository, badgeService *BadgeService) *ProfileService {
	return &ProfileService{userRepo: userRepo, badges: badgeService}
}

// UpdateSettings applies the supplied fields. Moving to the intermediate or
// advanced level awards the matching badge; newly awarded badges are returned.
func (s *ProfileService) UpdateSettings(ctx context.Context, user *models.User, update SettingsUpdate) ([]models.Badge, error) {
	if update.MyLang != nil && !models.IsValidLang(*update.MyLang) {
		return nil, apperr.Validation("Invalid language")
	}
	if update.TeachLevel != nil && !models.IsValidLevel(*update.TeachLevel) {
		return nil, apperr.Validation("Invalid level")
	}

	err := s.userRepo.UpdateSettings(ctx, user.ID, repository.UserSettings{
		MyLang:     update.MyLang,
		TeachLevel: update.TeachLevel,
		Onboarded:  update.Onboarded,
	})
	if err != nil {
		return nil, err
	}

	newBadges := []models.Badge{}
	if update.TeachLevel == nil {
		return newBadges, nil
	}
	badgeID, ok := badges.ForLevel(*update.TeachLevel)
	if !ok {
		return newBadges, nil
	}
	isNew, err := s.badges.Award(ctx, user.ID, badgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to award level badge: %w", err)
	}
	if isNew {
		newBadges = append(newBadges, s.badges.Catalog().Lookup([]string{badgeID})...)
	}
	return newBadges, nil
}
