package server

import (
	"errors"
	"strconv"
	"strings"

	"kyutaku/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListAlbums handles GET /api/albums/list
func (s *Server) ListAlbums(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	albums, err := s.mediaService.ListAlbums(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":     true,
		"albums": albums,
	})
}

// ListPhotos handles GET /api/albums/photos
func (s *Server) ListPhotos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photos, err := s.mediaService.ListPhotos(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":     true,
		"photos": photos,
	})
}

// CreateAlbum handles POST /api/albums/create
func (s *Server) CreateAlbum(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	album, err := s.mediaService.CreateAlbum(c.Context(), userID, c.FormValue("name"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":    true,
		"album": album,
	})
}

// DeleteAlbum handles POST /api/albums/delete. Photos in the album survive
// with their album reference cleared.
func (s *Server) DeleteAlbum(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	albumID, err := s.formID(c, "album_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	if err := s.mediaService.DeleteAlbum(c.Context(), userID, albumID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

// UploadPhoto handles POST /api/albums/upload. album_id is optional; one that
// does not resolve to an album owned by the caller is dropped and the photo
// stored without an album, matching how deleted albums leave their photos.
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	image, err := readImageFile(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	var albumID uint
	if raw := strings.TrimSpace(c.FormValue("album_id")); raw != "" {
		if id, parseErr := strconv.ParseUint(raw, 10, 32); parseErr == nil {
			albumID = uint(id)
		}
	}

	photo, err := s.mediaService.UploadPhoto(c.Context(), service.UploadPhotoInput{
		UserID:  userID,
		AlbumID: albumID,
		Image:   image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":    true,
		"photo": photo,
	})
}

// DeletePhoto handles POST /api/albums/delete-photo
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photoID, err := s.formID(c, "photo_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	if err := s.mediaService.DeletePhoto(c.Context(), userID, photoID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
