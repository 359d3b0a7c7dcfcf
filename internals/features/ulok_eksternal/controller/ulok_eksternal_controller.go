package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokasiku_backend/internals/constants"
	"lokasiku_backend/internals/features/ulok_eksternal/dto"
	"lokasiku_backend/internals/features/ulok_eksternal/model"
	"lokasiku_backend/internals/features/ulok_eksternal/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

type UlokEksternalController struct {
	DB *gorm.DB
	Fn service.UlokEksternalService
}

func NewUlokEksternalController(db *gorm.DB) *UlokEksternalController {
	return &UlokEksternalController{DB: db, Fn: service.NewUlokEksternalService(db)}
}

// POST /api/intake/ulok_eksternal — jalur masuk publik (tanpa sesi),
// dilindungi rate limiter di route.
func (ctrl *UlokEksternalController) Intake(c *fiber.Ctx) error {
	if issues := helper.CheckStrictBody(c.Body(), dto.IntakeKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan intake ulok eksternal:", err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonCreated(c, m)
}

// GET /api/ulok_eksternal — keyset list, mendukung ?after= dan ?before=.
func (ctrl *UlokEksternalController) List(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlokEksternal(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	filters, issues := helper.ResolveListFilters(c)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	limit := helper.ClampLimit(c, 25, 100)

	q := ctrl.DB.Model(&model.UlokEksternalModel{}).Limit(limit)

	// record belum punya branch → hanya kelihatan oleh regional ke atas
	if !helperAuth.IsRegionalOrAboveUser(user) {
		if user.BranchID == nil {
			return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
				"User tidak memiliki branch")
		}
		q = q.Where("branch_id = ?", *user.BranchID)
	}
	if filters.Search != "" {
		q = q.Where("nama_pemilik ILIKE ? OR alamat ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}
	if filters.Month != nil {
		q = q.Where("EXTRACT(MONTH FROM created_at) = ?", *filters.Month)
	}
	if filters.Year != nil {
		q = q.Where("EXTRACT(YEAR FROM created_at) = ?", *filters.Year)
	}

	// cursor yang tidak lengkap diperlakukan seperti tidak ada cursor
	if key, id, ok := helper.DecodeCursor(c.Query("after")).Keyset(); ok {
		q = q.Where("(created_at, id) < (?::timestamptz, ?::uuid)", key, id).
			Order("created_at DESC, id DESC")
	} else if key, id, ok := helper.DecodeCursor(c.Query("before")).Keyset(); ok {
		q = q.Where("(created_at, id) > (?::timestamptz, ?::uuid)", key, id).
			Order("created_at ASC, id ASC")
	} else {
		q = q.Order("created_at DESC, id DESC")
	}

	var rows []model.UlokEksternalModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	var next string
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = helper.EncodeCursor(helper.Cursor{
			"created_at": last.CreatedAt,
			"id":         last.ID.String(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": rows,
		"next": next,
	})
}

// GET /api/ulok_eksternal/:id
func (ctrl *UlokEksternalController) Detail(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlokEksternal(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	var m model.UlokEksternalModel
	if err := ctrl.DB.First(&m, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, helper.ErrNotFound)
	}

	// branch scoping manual: record tanpa branch hanya untuk regional ke atas
	if !helperAuth.IsRegionalOrAboveUser(user) {
		access := helperAuth.DecideBranchAccess(user, m.BranchID, true)
		if !access.Allowed {
			return access.Respond(c)
		}
	}
	return helper.JsonData(c, m)
}

// PATCH /api/ulok_eksternal/:id/approval — location specialist memutuskan.
func (ctrl *UlokEksternalController) Approval(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if user.PositionNama != constants.RoleLocationSpecialist {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			constants.RoleErrorSpecialist("approval ulok eksternal"))
	}
	if user.BranchID == nil {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "ulok_eksternal", "id", id)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.ApprovalKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	status, ok := req.Normalize()
	if !ok {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"status_ulok_eksternal"}, Message: "harus OK atau NOK"}})
	}

	row, err := ctrl.Fn.Approve(c.UserContext(), user.ID, id, status)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// PATCH /api/ulok_eksternal/:id/assign-branch — khusus regional manager.
func (ctrl *UlokEksternalController) AssignBranch(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if user.PositionNama != constants.RoleRegionalManager {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			constants.RoleErrorRegional("assign branch"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.AssignBranchKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.AssignBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Fn.AssignBranch(c.UserContext(), user.ID, id, req.Branch)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// PATCH /api/ulok_eksternal/:id/assign-penanggungjawab — location manager
// menunjuk specialist.
func (ctrl *UlokEksternalController) AssignPenanggungjawab(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if user.PositionNama != constants.RoleLocationManager {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			constants.RoleErrorManager("assign penanggungjawab"))
	}
	if user.BranchID == nil {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "ulok_eksternal", "id", id)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.AssignPJKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.AssignPJRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Fn.AssignPenanggungjawab(c.UserContext(), user.ID, id, req.Penanggungjawab)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}
