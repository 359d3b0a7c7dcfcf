package constants

import "fmt"

// Role (position_nama) yang dikenal sistem. Nilai disimpan lowercase di tabel positions.
const (
	RoleLocationSpecialist = "location specialist"
	RoleLocationManager    = "location manager"
	RoleBranchManager      = "branch manager"
	RoleRegionalManager    = "regional manager"
	RoleGeneralManager     = "general manager"
	RoleAdminBranch        = "admin branch"
)

// Template pesan error role
const (
	ErrOnlySpecialistCanAccess = "❌ Hanya location specialist yang boleh mengakses fitur %s."
	ErrOnlyManagerCanAccess    = "❌ Hanya level manager ke atas yang boleh mengakses fitur %s."
	ErrOnlyRegionalCanAccess   = "❌ Hanya regional manager ke atas yang boleh mengakses fitur %s."
	ErrOnlyBranchRegionalCan   = "❌ Hanya branch manager atau regional manager yang boleh mengakses fitur %s."
	ErrOnlyGeneralCanAccess    = "❌ Hanya general manager yang boleh mengakses fitur %s."
)

func RoleErrorSpecialist(feature string) string {
	return fmt.Sprintf(ErrOnlySpecialistCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagerCanAccess, feature)
}

func RoleErrorRegional(feature string) string {
	return fmt.Sprintf(ErrOnlyRegionalCanAccess, feature)
}

func RoleErrorBranchRegional(feature string) string {
	return fmt.Sprintf(ErrOnlyBranchRegionalCan, feature)
}

func RoleErrorGeneral(feature string) string {
	return fmt.Sprintf(ErrOnlyGeneralCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleLocationSpecialist,
		RoleLocationManager,
		RoleBranchManager,
		RoleRegionalManager,
		RoleGeneralManager,
		RoleAdminBranch,
	}

	// Regional ke atas bebas dari branch scoping.
	RegionalAndAbove = []string{
		RoleRegionalManager,
		RoleGeneralManager,
	}

	ManagerAndAbove = []string{
		RoleLocationManager,
		RoleBranchManager,
		RoleRegionalManager,
		RoleGeneralManager,
	}

	SpecialistOnly = []string{
		RoleLocationSpecialist,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsRegionalOrAbove(role string) bool {
	for _, r := range RegionalAndAbove {
		if r == role {
			return true
		}
	}
	return false
}
