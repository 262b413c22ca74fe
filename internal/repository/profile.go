package repository

import (
	"context"

	"kyutaku/internal/cache"
	"kyutaku/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	// GetOrCreate returns the profile for the user, creating an empty one if
	// absent. Safe under concurrent callers for the same user: the unique
	// index on user_id makes the create race lose to a re-fetch.
	GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		err := r.db.WithContext(ctx).
			Where(models.Profile{UserID: userID}).
			FirstOrCreate(&profile).Error
		if err == nil {
			return nil
		}
		if !isUniqueConstraintError(err) {
			return models.NewInternalError(err)
		}
		// Lost the creation race; the row exists now.
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}
