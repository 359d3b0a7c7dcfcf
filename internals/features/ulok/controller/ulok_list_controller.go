package controller

import (
	"github.com/gofiber/fiber/v2"

	"lokasiku_backend/internals/features/ulok/model"
	"lokasiku_backend/internals/features/ulok/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

// GET /api/ulok — listing cursor (keyset) via fn_ulok_list.
// ?after = base64url {"created_at":..., "id":...}; ?limit clamp [1,100];
// ?search, ?month [1,12], ?year [1970,2100] — divalidasi lokal dulu,
// prosedur tidak dipanggil kalau 422.
func (ctrl *UlokController) List(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	filters, issues := helper.ResolveListFilters(c)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}

	limit := helper.ClampLimit(c, 25, 100)

	in := service.ListInput{
		UserID: user.ID,
		Search: filters.Search,
		Month:  filters.Month,
		Year:   filters.Year,
		Limit:  limit,
	}
	// regional ke atas lihat semua branch; lainnya di-scope
	if !helperAuth.IsRegionalOrAboveUser(user) {
		if user.BranchID == nil {
			return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
				"User tidak memiliki branch")
		}
		in.BranchID = user.BranchID
	}

	if cur := helper.DecodeCursor(c.Query("after")); cur != nil {
		if v, ok := cur.String("created_at"); ok {
			in.AfterKey = &v
		}
		if v, ok := cur.String("id"); ok {
			in.AfterID = &v
		}
	}

	rows, err := ctrl.Fn.List(c.UserContext(), in)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, rows)
}

// GET /api/ulok_eksisting — read-only, semua role dikenal boleh baca.
func (ctrl *UlokController) ListEksisting(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlokEksisting(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	filters, issues := helper.ResolveListFilters(c)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}

	limit := helper.ClampLimit(c, 50, 200)

	q := ctrl.DB.Model(&model.UlokEksistingModel{}).Order("created_at DESC, id DESC").Limit(limit)
	if !helperAuth.IsRegionalOrAboveUser(user) && user.BranchID != nil {
		q = q.Where("branch_id = ?", *user.BranchID)
	}
	if filters.Search != "" {
		q = q.Where("nama_toko ILIKE ? OR alamat ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}
	if filters.Month != nil {
		q = q.Where("EXTRACT(MONTH FROM tgl_buka) = ?", *filters.Month)
	}
	if filters.Year != nil {
		q = q.Where("EXTRACT(YEAR FROM tgl_buka) = ?", *filters.Year)
	}

	var rows []model.UlokEksistingModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, rows)
}
