package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokasiku_backend/internals/constants"
	helper "lokasiku_backend/internals/helpers"
)

// Guard branch-scope: pola "fetch branch pemilik → bandingkan" yang sama
// dipakai ULOK, KPLT, ULOK eksternal, dan progress. Diimplementasikan sekali
// di sini, bukan di-copy per route.

type AccessResult struct {
	Allowed  bool
	Status   int
	Message  string
	BranchID *uuid.UUID
}

// DecideBranchAccess: keputusan murni (tanpa DB) atas hasil resolve branch.
//   - record tidak ketemu → 404
//   - role regional ke atas → lolos tanpa cek branch
//   - user tanpa branch → 403 (pesan beda dari capability denied)
//   - branch tidak sama → 404, BUKAN 403 — tidak membocorkan bahwa ID
//     ada di branch lain (anti enumerasi lintas branch)
func DecideBranchAccess(u *CurrentUser, dataBranchID *uuid.UUID, found bool) AccessResult {
	if !found || dataBranchID == nil {
		return AccessResult{Allowed: false, Status: fiber.StatusNotFound, Message: "Data tidak ditemukan"}
	}
	if u != nil && constants.IsRegionalOrAbove(u.PositionNama) {
		return AccessResult{Allowed: true, BranchID: dataBranchID}
	}
	if u == nil || u.BranchID == nil {
		return AccessResult{Allowed: false, Status: fiber.StatusForbidden, Message: "User tidak memiliki branch"}
	}
	if *u.BranchID != *dataBranchID {
		return AccessResult{Allowed: false, Status: fiber.StatusNotFound, Message: "Data tidak ditemukan"}
	}
	return AccessResult{Allowed: true, BranchID: dataBranchID}
}

// Respond: kirim response error sesuai hasil guard (dipanggil saat !Allowed).
func (a AccessResult) Respond(c *fiber.Ctx) error {
	if a.Status == fiber.StatusForbidden {
		return helper.ErrorWithMessage(c, a.Status, helper.ErrForbidden, a.Message)
	}
	return helper.Error(c, fiber.StatusNotFound, helper.ErrNotFound)
}

// ResolveOwningBranch: ambil branch_id pemilik satu record berdasarkan tabel
// dan kolom id-nya. found=false kalau record tidak ada (termasuk soft-deleted).
func ResolveOwningBranch(db *gorm.DB, table, idColumn string, id uuid.UUID) (*uuid.UUID, bool, error) {
	var row struct {
		BranchID *uuid.UUID `gorm:"column:branch_id"`
		Found    bool       `gorm:"column:found"`
	}
	err := db.Raw(
		"SELECT branch_id, TRUE AS found FROM "+table+" WHERE "+idColumn+" = ? AND deleted_at IS NULL",
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, false, err
	}
	return row.BranchID, row.Found, nil
}

// ValidateBranchAccess: gabungan resolve + decide untuk resource sederhana
// yang punya kolom branch_id sendiri.
func ValidateBranchAccess(db *gorm.DB, u *CurrentUser, table, idColumn string, id uuid.UUID) (AccessResult, error) {
	branchID, found, err := ResolveOwningBranch(db, table, idColumn, id)
	if err != nil {
		return AccessResult{}, err
	}
	return DecideBranchAccess(u, branchID, found), nil
}
