package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Label taksonomi error — field "error" selalu salah satu dari ini.
const (
	ErrUnauthorized       = "Unauthorized"
	ErrForbidden          = "Forbidden"
	ErrValidation         = "Validation Error"
	ErrNotFound           = "Not Found"
	ErrConflict           = "Conflict"
	ErrPrecondition       = "Precondition Failed"
	ErrInternal           = "Internal Server Error"
)

// FieldIssue: satu error per field, dipakai di "detail".
type FieldIssue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ✅ Sukses: bungkus row sebagai {data}
func JsonData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": data})
}

func JsonCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

// ✅ Sukses varian dashboard: {success:true, data:...}
func JsonSuccess(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data})
}

// ✅ Error sederhana: {error}
func Error(c *fiber.Ctx, code int, errLabel string) error {
	return c.Status(code).JSON(fiber.Map{"error": errLabel})
}

// ✅ Error + pesan manusiawi: {error, message}
func ErrorWithMessage(c *fiber.Ctx, code int, errLabel, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error":   errLabel,
		"message": message,
	})
}

// ✅ Error + detail terstruktur: {error, detail}
func ErrorWithDetails(c *fiber.Ctx, code int, errLabel string, detail interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"error":  errLabel,
		"detail": detail,
	})
}

// =======================
// VALIDATOR (validator.v10)
// =======================

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// pakai nama json sebagai path error, bukan nama field Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ✅ Khusus error validasi: 422 + detail [{path,message}]
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusUnprocessableEntity, ErrValidation)
	}

	issues := make([]FieldIssue, 0, len(ve))
	for _, fe := range ve {
		issues = append(issues, FieldIssue{
			Path:    []string{fe.Field()},
			Message: validationMessage(fe),
		})
	}
	return ErrorWithDetails(c, fiber.StatusUnprocessableEntity, ErrValidation, issues)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "email":
		return "format email tidak valid"
	case "datetime":
		return "format tanggal harus " + fe.Param()
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	case "uuid":
		return "harus UUID yang valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
