package helper

import (
	"lokasiku_backend/internals/constants"
)

// Aksi per resource — set tertutup, string supaya gampang dipetakan ke route.
const (
	ActionRead         = "read"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionApprove      = "approve"
	ActionFinalApprove = "final-approve"
	ActionDelete       = "delete"
)

// Tabel kapabilitas: fungsi murni dari (aksi, role). Flat switch, bukan
// rules engine — enam role tidak butuh lebih dari ini.
// Semua fungsi Can* aman dipanggil dengan user nil (selalu false) dan
// tidak pernah panic; role tak dikenal selalu false.

func CanUlok(action string, u *CurrentUser) bool {
	if u == nil {
		return false
	}
	switch u.PositionNama {
	case constants.RoleLocationSpecialist:
		return action == ActionRead || action == ActionCreate ||
			action == ActionUpdate || action == ActionDelete
	case constants.RoleLocationManager:
		return action == ActionRead || action == ActionUpdate
	case constants.RoleBranchManager, constants.RoleRegionalManager, constants.RoleAdminBranch:
		return action == ActionRead
	}
	return false
}

// CanKplt tidak memberi approve/final-approve ke role mana pun;
// keputusan approval dicek per-endpoint (BM/RM approve, GM final).
func CanKplt(action string, u *CurrentUser) bool {
	if u == nil {
		return false
	}
	switch u.PositionNama {
	case constants.RoleLocationSpecialist:
		return action == ActionRead || action == ActionCreate ||
			action == ActionUpdate || action == ActionDelete
	case constants.RoleLocationManager:
		return action == ActionRead || action == ActionUpdate
	case constants.RoleBranchManager, constants.RoleRegionalManager:
		return action == ActionRead || action == ActionUpdate ||
			action == ActionCreate
	case constants.RoleGeneralManager:
		return action == ActionRead || action == ActionCreate ||
			action == ActionUpdate
	case constants.RoleAdminBranch:
		return action == ActionRead
	}
	return false
}

func CanProgressKplt(action string, u *CurrentUser) bool {
	if u == nil {
		return false
	}
	if u.PositionNama == constants.RoleAdminBranch {
		return true // akses penuh semua aksi progress
	}
	if constants.IsKnownRole(u.PositionNama) {
		return action == ActionRead
	}
	return false
}

func CanUlokEksternal(action string, u *CurrentUser) bool {
	if u == nil || !constants.IsKnownRole(u.PositionNama) {
		return false
	}
	switch u.PositionNama {
	case constants.RoleGeneralManager, constants.RoleAdminBranch:
		return action == ActionRead
	default:
		return action == ActionRead || action == ActionUpdate
	}
}

func CanUlokEksisting(action string, u *CurrentUser) bool {
	if u == nil || !constants.IsKnownRole(u.PositionNama) {
		return false
	}
	return action == ActionRead
}

// IsRegionalOrAboveUser: role yang bebas dari branch scoping.
func IsRegionalOrAboveUser(u *CurrentUser) bool {
	return u != nil && constants.IsRegionalOrAbove(u.PositionNama)
}

// CanApproveStage: satu kapabilitas seragam untuk keenam tahap progress
// (MOU, izin tetangga, perizinan, notaris, renovasi, grand opening).
// Union dari dua kebijakan lama (canKplt update vs canProgressKplt) supaya
// tidak ada role yang kehilangan akses; role tak dikenal tetap ditolak.
func CanApproveStage(u *CurrentUser) bool {
	if u == nil {
		return false
	}
	return constants.IsKnownRole(u.PositionNama)
}
