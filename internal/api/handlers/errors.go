package handlers

import (
	"context"
	"errors"

	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps a service error onto its status code. Unclassified
// errors are logged and reported without internal detail.
func respondError(c *fiber.Ctx, logger *zap.Logger, msg string, err error) error {
	var verr *dto.ValidationError

	switch {
	case errors.Is(err, service.ErrValidation) && errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "Validation failed", Code: "validation_error", Fields: verr.Fields,
		})
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "Validation failed", Code: "validation_error",
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Not found", Code: "not_found",
		})
	case errors.Is(err, service.ErrAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: "Offer already claimed", Code: "already_claimed",
		})
	case errors.Is(err, service.ErrInvalidReferrer):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: "Referrer cannot be the offer owner", Code: "invalid_referrer",
		})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: "Already exists", Code: "conflict",
		})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "Request timed out", Code: "store_unavailable",
		})
	case errors.Is(err, service.ErrStoreUnavailable):
		logger.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: msg, Code: "store_unavailable",
		})
	default:
		logger.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: msg, Code: "internal",
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg, Code: "bad_request"})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
