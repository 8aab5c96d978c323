package service

import (
	"context"
	"strings"
	"time"

	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/repository"
	"github.com/fyzahq/fyza/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByID(ctx context.Context, id int64) (*model.Profile, error) {
	return s.profileRepo.ByID(ctx, id)
}

func (s *ProfileService) Create(ctx context.Context, profile *model.Profile) error {
	normalize(profile)

	err := validation.ValidateProfile(profile)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	profile.ID = 0
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return s.profileRepo.Create(ctx, profile)
}

// Update replaces the profile with the given id
func (s *ProfileService) Update(ctx context.Context, id int64, profile *model.Profile) error {
	normalize(profile)

	err := validation.ValidateProfile(profile)
	if err != nil {
		return err
	}

	profile.ID = id
	profile.UpdatedAt = time.Now().UTC()

	return s.profileRepo.Update(ctx, profile)
}

func normalize(p *model.Profile) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.City = strings.TrimSpace(p.City)
	p.Occupation = strings.TrimSpace(p.Occupation)
	p.RiskProfile = strings.ToLower(strings.TrimSpace(p.RiskProfile))
}
