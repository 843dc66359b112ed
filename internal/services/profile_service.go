package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktaneda/rental-ledger-api/internal/models"
	"github.com/ktaneda/rental-ledger-api/internal/repository"
	"github.com/ktaneda/rental-ledger-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidTaxRate  = errors.New("tax rate must be between 0 and 100")
)

// ProfileService handles account profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile retrieves the profile owned by a user.
func (s *ProfileService) GetProfile(userID uint64) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// UpdateProfileInput represents a partial update of a user's profile.
type UpdateProfileInput struct {
	Email        *string
	TaxRate      *int
	ClearTaxRate bool
}

// UpdateProfile applies a partial update. Changing the email recomputes the
// derived avatar hash so the two never drift apart.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != profile.Email {
			profile.Email = email
			profile.AvatarHash = utils.GravatarHash(email)
		}
	}
	if input.ClearTaxRate {
		profile.TaxRate = nil
	} else if input.TaxRate != nil {
		if *input.TaxRate < 0 || *input.TaxRate > 100 {
			return nil, ErrInvalidTaxRate
		}
		profile.TaxRate = input.TaxRate
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
