package repository

import (
	"context"
	"errors"

	"kyutaku/internal/models"

	"gorm.io/gorm"
)

// AlbumRepository defines persistence operations for albums and photos.
type AlbumRepository interface {
	Create(ctx context.Context, album *models.Album) error
	GetOwned(ctx context.Context, id, userID uint) (*models.Album, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Album, error)
	// Delete removes the user's album and nulls the album reference on its
	// photos; photos themselves are kept. Both steps run in one transaction.
	Delete(ctx context.Context, id, userID uint) error

	// CreatePhoto stores a photo. When albumID is non-zero the album ownership
	// check and the insert run in the same transaction, so a concurrent album
	// delete cannot slip between check and use. An album that does not resolve
	// to one owned by the photo's user is dropped silently.
	CreatePhoto(ctx context.Context, photo *models.Photo, albumID uint) error
	DeletePhoto(ctx context.Context, id, userID uint) error
	ListPhotosByUser(ctx context.Context, userID uint) ([]*models.Photo, error)
}

type albumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository returns a new AlbumRepository implementation.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *models.Album) error {
	if err := r.db.WithContext(ctx).Create(album).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *albumRepository) GetOwned(ctx context.Context, id, userID uint) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&album).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Album", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &album, nil
}

func (r *albumRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Album, error) {
	var albums []*models.Album
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&albums).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return albums, nil
}

func (r *albumRepository) Delete(ctx context.Context, id, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Album{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Album", id)
		}
		if err := tx.Model(&models.Photo{}).
			Where("album_id = ?", id).
			Update("album_id", nil).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}

func (r *albumRepository) CreatePhoto(ctx context.Context, photo *models.Photo, albumID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		photo.AlbumID = nil
		if albumID != 0 {
			var album models.Album
			err := tx.Where("id = ? AND user_id = ?", albumID, photo.UserID).
				First(&album).Error
			switch {
			case err == nil:
				photo.AlbumID = &album.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Unknown or foreign album: keep the photo, drop the reference.
			default:
				return models.NewInternalError(err)
			}
		}
		if err := tx.Create(photo).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *albumRepository) DeletePhoto(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Photo{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Photo", id)
	}
	return nil
}

func (r *albumRepository) ListPhotosByUser(ctx context.Context, userID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&photos).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return photos, nil
}
