package server

import (
	"errors"

	"kyutaku/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/comments/add
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.formID(c, "post_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	comment, err := s.feedService.AddComment(c.Context(), service.AddCommentInput{
		UserID: userID,
		PostID: postID,
		Text:   c.FormValue("text"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"comment": comment,
	})
}

// DeleteComment handles POST /api/comments/delete. The comment's author and
// the owner of the commented post may both delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.formID(c, "comment_id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return respondServiceError(c, err)
	}

	if err := s.feedService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
