package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	helperAuth "lokasiku_backend/internals/helpers/auth"
)

// ValidateProgressAccess: guard branch-scope untuk record progress.
// Branch pemilik di-resolve lewat join progress_kplts → kplts, keputusannya
// memakai helperAuth.DecideBranchAccess (404 generik untuk lintas branch).
func ValidateProgressAccess(db *gorm.DB, user *helperAuth.CurrentUser, progressID uuid.UUID) (helperAuth.AccessResult, error) {
	branchID, found, err := resolveProgressBranch(db, progressID)
	if err != nil {
		return helperAuth.AccessResult{}, err
	}
	return helperAuth.DecideBranchAccess(user, branchID, found), nil
}

func resolveProgressBranch(db *gorm.DB, progressID uuid.UUID) (*uuid.UUID, bool, error) {
	var row struct {
		BranchID *uuid.UUID `gorm:"column:branch_id"`
		Found    bool       `gorm:"column:found"`
	}
	err := db.Raw(`
		SELECT k.branch_id, TRUE AS found
		FROM progress_kplts p
		JOIN kplts k ON k.id = p.kplt_id AND k.deleted_at IS NULL
		WHERE p.id = ? AND p.deleted_at IS NULL
	`, progressID).Scan(&row).Error
	if err != nil {
		return nil, false, err
	}
	return row.BranchID, row.Found, nil
}
