package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Klasifikasi error dari fungsi database (fn_*) ke taksonomi HTTP.
// Urutan: SQLSTATE dulu (terstruktur), baru substring pesan (warisan
// prosedur lama yang masih melempar RAISE EXCEPTION teks bebas).
//
// SQLSTATE yang dikenal:
//   22P02  invalid_text_representation (enum/uuid salah) → 422 Validation
//   23505  unique_violation                              → 409 Conflict
//   P0001  raise_exception (pesan bebas dari prosedur)   → lihat substring

const (
	pqInvalidTextRepresentation = "22P02"
	pqUniqueViolation           = "23505"
	pqRaiseException            = "P0001"
)

// FnError: hasil klasifikasi — Label dipakai di field "error" response.
type FnError struct {
	Code    int
	Label   string
	Message string
}

func ClassifyFnError(err error) FnError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FnError{fiber.StatusNotFound, ErrNotFound, "Data tidak ditemukan"}
	}

	msg := err.Error()

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqInvalidTextRepresentation:
			return FnError{fiber.StatusUnprocessableEntity, ErrValidation, "Nilai enum tidak valid"}
		case pqUniqueViolation:
			return FnError{fiber.StatusConflict, ErrConflict, "Data duplikat"}
		case pqRaiseException:
			msg = pqErr.Message
		}
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already finalized"),
		strings.Contains(lower, "sudah difinalisasi"):
		return FnError{fiber.StatusConflict, ErrConflict, "Status sudah difinalisasi"}
	case strings.Contains(lower, "prerequisite"),
		strings.Contains(lower, "syarat"):
		// pesan prosedur sudah menyebut tahap yang kurang, teruskan apa adanya
		return FnError{fiber.StatusUnprocessableEntity, ErrPrecondition, msg}
	case strings.Contains(lower, "not found"),
		strings.Contains(lower, "tidak ditemukan"):
		return FnError{fiber.StatusNotFound, ErrNotFound, "Data tidak ditemukan"}
	}

	return FnError{fiber.StatusInternalServerError, ErrInternal, msg}
}

// RespondFnError kirim response JSON dari hasil klasifikasi.
// Pesan mentah hanya masuk "detail" pada bucket 500 — field "error"
// tidak pernah membawa teks internal.
func RespondFnError(c *fiber.Ctx, err error) error {
	fe := ClassifyFnError(err)
	if fe.Code == fiber.StatusInternalServerError {
		return ErrorWithDetails(c, fe.Code, fe.Label, fe.Message)
	}
	if fe.Code == fiber.StatusNotFound {
		return Error(c, fe.Code, fe.Label)
	}
	return ErrorWithMessage(c, fe.Code, fe.Label, fe.Message)
}
