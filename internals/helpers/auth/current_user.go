package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurrentUser: identitas ter-resolve untuk satu request. Immutable setelah
// diambil — handler menerima ini sebagai parameter, bukan global.
type CurrentUser struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Nama         string     `json:"nama"`
	BranchID     *uuid.UUID `json:"branch_id"`
	BranchNama   string     `json:"branch_nama"`
	PositionID   uuid.UUID  `json:"position_id"`
	PositionNama string     `json:"position_nama"`
}

// GetCurrentUser resolve user_id dari Locals (diisi AuthMiddleware) lalu
// join users→branches→positions. Kontrak: nil kalau tidak ada sesi ATAU
// lookup identitas tidak lengkap — bukan error. Caller wajib cek nil → 401.
func GetCurrentUser(c *fiber.Ctx, db *gorm.DB) *CurrentUser {
	// memo per-request: sekali resolve, handler berikutnya tidak query lagi
	if cu, ok := c.Locals("current_user").(*CurrentUser); ok {
		return cu
	}

	raw := c.Locals("user_id")
	if raw == nil {
		return nil
	}

	var userID uuid.UUID
	switch v := raw.(type) {
	case uuid.UUID:
		userID = v
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return nil
		}
		userID = parsed
	default:
		return nil
	}

	var row struct {
		ID           uuid.UUID  `gorm:"column:id"`
		Email        string     `gorm:"column:email"`
		Nama         string     `gorm:"column:nama"`
		BranchID     *uuid.UUID `gorm:"column:branch_id"`
		BranchNama   *string    `gorm:"column:branch_nama"`
		PositionID   *uuid.UUID `gorm:"column:position_id"`
		PositionNama *string    `gorm:"column:position_nama"`
	}
	err := db.Raw(`
		SELECT u.id, u.email, u.nama, u.branch_id,
		       b.nama  AS branch_nama,
		       u.position_id,
		       p.nama  AS position_nama
		FROM users u
		LEFT JOIN branches  b ON b.id = u.branch_id
		LEFT JOIN positions p ON p.id = u.position_id
		WHERE u.id = ? AND u.deleted_at IS NULL
	`, userID).Scan(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("[ERROR] Gagal resolve current user:", err)
		}
		return nil
	}
	// Scan tanpa row match meninggalkan struct kosong
	if row.ID == uuid.Nil || row.PositionID == nil || row.PositionNama == nil {
		return nil
	}

	cu := &CurrentUser{
		ID:           row.ID,
		Email:        row.Email,
		Nama:         row.Nama,
		BranchID:     row.BranchID,
		PositionID:   *row.PositionID,
		PositionNama: strings.ToLower(strings.TrimSpace(*row.PositionNama)),
	}
	if row.BranchNama != nil {
		cu.BranchNama = *row.BranchNama
	}
	c.Locals("current_user", cu)
	return cu
}
