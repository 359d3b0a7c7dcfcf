package helper

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestClassifyFnErrorSQLState(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantLabel string
	}{
		{
			name:      "enum tidak valid (22P02)",
			err:       &pq.Error{Code: "22P02", Message: "invalid input value for enum"},
			wantCode:  fiber.StatusUnprocessableEntity,
			wantLabel: ErrValidation,
		},
		{
			name:      "unique violation (23505)",
			err:       &pq.Error{Code: "23505", Message: "duplicate key value"},
			wantCode:  fiber.StatusConflict,
			wantLabel: ErrConflict,
		},
		{
			name:      "record not found gorm",
			err:       gorm.ErrRecordNotFound,
			wantCode:  fiber.StatusNotFound,
			wantLabel: ErrNotFound,
		},
		{
			name:      "raise already finalized",
			err:       &pq.Error{Code: "P0001", Message: "Stage already finalized"},
			wantCode:  fiber.StatusConflict,
			wantLabel: ErrConflict,
		},
		{
			name:      "raise prerequisite",
			err:       &pq.Error{Code: "P0001", Message: "prerequisite stage Notaris not complete"},
			wantCode:  fiber.StatusUnprocessableEntity,
			wantLabel: ErrPrecondition,
		},
		{
			name:      "raise syarat (pesan indonesia)",
			err:       &pq.Error{Code: "P0001", Message: "Syarat Notaris belum terpenuhi"},
			wantCode:  fiber.StatusUnprocessableEntity,
			wantLabel: ErrPrecondition,
		},
		{
			name:      "raise not found",
			err:       &pq.Error{Code: "P0001", Message: "progress not found"},
			wantCode:  fiber.StatusNotFound,
			wantLabel: ErrNotFound,
		},
		{
			name:      "error lain jatuh ke 500",
			err:       errors.New("connection reset by peer"),
			wantCode:  fiber.StatusInternalServerError,
			wantLabel: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFnError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code = %d, mau %d", got.Code, tt.wantCode)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, mau %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestClassifyFnErrorPreconditionKeepsMessage(t *testing.T) {
	// pesan prosedur menyebut tahap yang kurang — harus diteruskan utuh
	err := &pq.Error{Code: "P0001", Message: "Syarat Notaris belum terpenuhi"}
	got := ClassifyFnError(err)
	if got.Message != "Syarat Notaris belum terpenuhi" {
		t.Errorf("message = %q, pesan prosedur harus diteruskan", got.Message)
	}
}

func TestClassifyFnErrorSubstringWithoutPqError(t *testing.T) {
	// prosedur lama kadang sampai sebagai error teks biasa
	got := ClassifyFnError(errors.New("ERROR: stage already finalized (SQLSTATE P0001)"))
	if got.Code != fiber.StatusConflict {
		t.Errorf("code = %d, mau 409", got.Code)
	}
}
