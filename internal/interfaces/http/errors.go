package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-matrix-api/internal/application/dto"
	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/pkg/ean13"
)

// errorStatus traduce un error de dominio a (status HTTP, código estable).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrReferenceNotFound):
		return fiber.StatusNotFound, "REFERENCE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmptyGrade):
		return fiber.StatusUnprocessableEntity, "EMPTY_GRADE"
	case errors.Is(err, domain.ErrEmptyColorSet):
		return fiber.StatusUnprocessableEntity, "EMPTY_COLOR_SET"
	case errors.Is(err, domain.ErrSequenceOverflow):
		return fiber.StatusUnprocessableEntity, "SEQUENCE_OVERFLOW"
	case errors.Is(err, domain.ErrAllocationFailed):
		return fiber.StatusServiceUnavailable, "ALLOCATION_FAILED"
	case errors.Is(err, domain.ErrDuplicateBarcode):
		return fiber.StatusConflict, "DUPLICATE_BARCODE"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidReference):
		return fiber.StatusBadRequest, "INVALID_REFERENCE"
	case errors.Is(err, ean13.ErrInvalidChecksum):
		return fiber.StatusBadRequest, "INVALID_CHECKSUM"
	case errors.Is(err, ean13.ErrInvalidLength), errors.Is(err, ean13.ErrInvalidFormat):
		return fiber.StatusBadRequest, "INVALID_BARCODE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
