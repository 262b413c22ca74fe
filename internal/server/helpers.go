// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"kyutaku/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPaginationLimit = 100

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// respondServiceError maps a service/repository error to its HTTP status and
// writes the JSON error envelope.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// formID extracts a form field as a positive uint. On failure it writes a 400
// JSON response and returns errResponseWritten; callers should then return nil.
func (s *Server) formID(c *fiber.Ctx, field string) (uint, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ReplaceAll(field, "_", " ")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// queryID extracts a query parameter as a positive uint, with the same
// contract as formID.
func (s *Server) queryID(c *fiber.Ctx, field string) (uint, error) {
	id := c.QueryInt(field)
	if id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ReplaceAll(field, "_", " ")))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// optionalFormValue reports a form field's value only when the field was
// actually submitted, so handlers can distinguish "absent" from "empty".
func optionalFormValue(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	args := c.Request().PostArgs()
	if !args.Has(key) {
		return nil
	}
	v := string(args.Peek(key))
	return &v
}

// readImageFile reads the named multipart file field. A missing field is not
// an error; it returns (nil, nil) so callers can treat the image as optional.
func readImageFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, models.NewValidationError("Unreadable file upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewValidationError("Unreadable file upload")
	}
	return data, nil
}

// currentUser loads the authenticated user from the userID local set by
// AuthRequired.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, models.NewUnauthorizedError("Authorization required")
	}
	return s.userRepo.GetByID(c.Context(), userID)
}
