package service

import (
	"context"
	"strings"

	"kyutaku/internal/models"
	"kyutaku/internal/repository"
	"kyutaku/internal/storage"
)

// MediaService manages albums and photos.
type MediaService struct {
	albumRepo repository.AlbumRepository
	media     *storage.Store
}

// UploadPhotoInput carries a photo upload. A zero AlbumID means "no album";
// an AlbumID that does not resolve to one of the user's albums is dropped
// silently rather than rejected.
type UploadPhotoInput struct {
	UserID  uint
	AlbumID uint
	Image   []byte
}

// NewMediaService returns a MediaService.
func NewMediaService(albumRepo repository.AlbumRepository, media *storage.Store) *MediaService {
	return &MediaService{albumRepo: albumRepo, media: media}
}

func (s *MediaService) CreateAlbum(ctx context.Context, userID uint, name string) (*models.Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name required")
	}

	album := &models.Album{UserID: userID, Name: name}
	if err := s.albumRepo.Create(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *MediaService) DeleteAlbum(ctx context.Context, userID, albumID uint) error {
	return s.albumRepo.Delete(ctx, albumID, userID)
}

func (s *MediaService) ListAlbums(ctx context.Context, userID uint) ([]*models.Album, error) {
	return s.albumRepo.ListByUser(ctx, userID)
}

func (s *MediaService) UploadPhoto(ctx context.Context, in UploadPhotoInput) (*models.Photo, error) {
	if len(in.Image) == 0 {
		return nil, models.NewValidationError("No image provided")
	}

	saved, err := s.media.Save(storage.KindAlbum, in.Image)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		UserID:   in.UserID,
		ImageURL: saved.URL,
		ThumbURL: saved.ThumbURL,
	}
	if err := s.albumRepo.CreatePhoto(ctx, photo, in.AlbumID); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *MediaService) DeletePhoto(ctx context.Context, userID, photoID uint) error {
	return s.albumRepo.DeletePhoto(ctx, photoID, userID)
}

func (s *MediaService) ListPhotos(ctx context.Context, userID uint) ([]*models.Photo, error) {
	return s.albumRepo.ListPhotosByUser(ctx, userID)
}
