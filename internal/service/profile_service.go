// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"strconv"
	"strings"

	"kyutaku/internal/models"
	"kyutaku/internal/repository"
	"kyutaku/internal/storage"
)

// ProfileService manages the lazily-provisioned user profile.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	media       *storage.Store
}

// UpdateProfileInput carries a partial profile update. Nil fields keep their
// stored values; set fields overwrite them (self-merge, unlike posts where
// edit replaces content outright).
type UpdateProfileInput struct {
	FullName   *string
	Age        *string
	Birthday   *string
	Gender     *string
	Location   *string
	Favorites  *string
	LifeStatus *string
	Bio        *string
	Image      []byte
}

// NewProfileService returns a ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, media *storage.Store) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, media: media}
}

// Get returns the user's profile, creating an empty one on first access.
// Calling it twice for the same user always yields the same profile row.
func (s *ProfileService) Get(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	profile.Username = user.Username
	return profile, nil
}

// Update applies a partial update to the user's profile.
func (s *ProfileService) Update(ctx context.Context, user *models.User, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		profile.FullName = *in.FullName
	}
	if in.Age != nil {
		// A non-numeric age keeps the stored value silently, matching the
		// lenient form contract.
		if age, ok := parseAge(*in.Age); ok {
			profile.Age = &age
		}
	}
	if in.Birthday != nil {
		profile.Birthday = *in.Birthday
	}
	if in.Gender != nil {
		profile.Gender = *in.Gender
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Favorites != nil {
		profile.Favorites = *in.Favorites
	}
	if in.LifeStatus != nil {
		profile.LifeStatus = *in.LifeStatus
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}

	if len(in.Image) > 0 {
		saved, err := s.media.Save(storage.KindProfile, in.Image)
		if err != nil {
			return nil, err
		}
		profile.ImageURL = saved.URL
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	profile.Username = user.Username
	return profile, nil
}

// parseAge accepts only a string of decimal digits (a non-negative integer).
func parseAge(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return age, true
}
