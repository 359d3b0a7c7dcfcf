package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError mengubah error hasil Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten via helper.ErrorWithMessage.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli di "detail".
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return ErrorWithMessage(c, fe.Code, labelForStatus(fe.Code), fe.Message)
	}
	return ErrorWithDetails(c, fiber.StatusInternalServerError, ErrInternal, err.Error())
}

func labelForStatus(code int) string {
	switch code {
	case fiber.StatusUnauthorized:
		return ErrUnauthorized
	case fiber.StatusForbidden:
		return ErrForbidden
	case fiber.StatusNotFound:
		return ErrNotFound
	case fiber.StatusConflict:
		return ErrConflict
	case fiber.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrInternal
	}
}
