package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oculairmedia/keep-mcp/internal/pkg/apperror"
)

// ErrorDetail mirrors the wire shape of API errors: {"detail": "..."}.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ErrorHandlerMiddleware translates domain errors into HTTP status codes.
// NotFound and Forbidden pass through with their original messages; anything
// else from the Keep service surfaces as a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorDetail{Detail: fiberErr.Message})
		}

		kind, _ := apperror.KindOf(err)
		switch kind {
		case apperror.KindNotFound:
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorDetail{Detail: err.Error()})
		case apperror.KindForbidden:
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorDetail{Detail: err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorDetail{Detail: err.Error()})
		}
	}
}
