package server

import (
	"kyutaku/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /api/home. It returns everything the landing page needs:
// the user's profile, their albums and photos, and the global feed newest
// first with per-post like and comment counts.
func (s *Server) Home(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := s.profileService.Get(c.Context(), user)
	if err != nil {
		return respondServiceError(c, err)
	}

	albums, err := s.mediaService.ListAlbums(c.Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	photos, err := s.mediaService.ListPhotos(c.Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	p := parsePagination(c, 50)
	posts, err := s.feedService.Feed(c.Context(), p.Limit, p.Offset, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"profile": profile,
		"albums":  albums,
		"photos":  photos,
		"posts":   posts,
	})
}

// UpdateProfile handles POST /api/profile/update. The body is a partial
// update: only the fields actually submitted are applied, everything else
// keeps its stored value.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	image, err := readImageFile(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	in := service.UpdateProfileInput{
		FullName:   optionalFormValue(c, "full_name"),
		Age:        optionalFormValue(c, "age"),
		Birthday:   optionalFormValue(c, "birthday"),
		Gender:     optionalFormValue(c, "gender"),
		Location:   optionalFormValue(c, "location"),
		Favorites:  optionalFormValue(c, "favorites"),
		LifeStatus: optionalFormValue(c, "life_status"),
		Bio:        optionalFormValue(c, "bio"),
		Image:      image,
	}

	profile, err := s.profileService.Update(c.Context(), user, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"profile": profile,
	})
}
