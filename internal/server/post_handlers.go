package server

import (
	"errors"

	"kyutaku/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts/create. A post needs text content or an
// image (or both).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	image, err := readImageFile(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.feedService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Content: c.FormValue("content"),
		Image:   image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":   true,
		"post": post,
	})
}

// EditPost handles POST /api/posts/edit. The submitted content replaces the
// stored content outright; only the author may edit.
func (s *Server) EditPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.formID(c, "post_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	image, err := readImageFile(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.feedService.EditPost(c.Context(), service.EditPostInput{
		UserID:  userID,
		PostID:  postID,
		Content: c.FormValue("content"),
		Image:   image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":   true,
		"post": post,
	})
}

// DeletePost handles POST /api/posts/delete. Comments and likes go with the
// post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.formID(c, "post_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	if err := s.feedService.DeletePost(c.Context(), userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}

// ToggleLike handles POST /api/posts/toggle-like. Liking an already-liked
// post removes the like; the response reports the resulting state.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.formID(c, "post_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	result, err := s.feedService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":          true,
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}

// ListComments handles GET /api/posts/comments?post_id=
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, err := s.queryID(c, "post_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	comments, err := s.feedService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"comments": comments,
	})
}
