package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokasiku_backend/internals/constants"
	"lokasiku_backend/internals/features/kplt/dto"
	"lokasiku_backend/internals/features/kplt/model"
	"lokasiku_backend/internals/features/kplt/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

type KpltController struct {
	DB *gorm.DB
	Fn service.KpltService
}

func NewKpltController(db *gorm.DB) *KpltController {
	return &KpltController{DB: db, Fn: service.NewKpltService(db)}
}

// POST /api/kplt — buat KPLT dari ULOK yang sudah OK (dicek fn_kplt_create).
func (ctrl *KpltController) Create(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionCreate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}
	if user.BranchID == nil && !helperAuth.IsRegionalOrAboveUser(user) {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.KpltCreateKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.CreateKpltRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// ULOK induk harus se-branch dengan pembuat
	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", req.Ulok)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	in := service.CreateInput{
		UserID:        user.ID,
		UlokID:        req.Ulok,
		NamaPemilik:   strings.TrimSpace(req.NamaPemilik),
		NilaiKontrak:  req.NilaiKontrak,
		MasaSewaTahun: req.MasaSewaTahun,
		NomorKontrak:  req.NomorKontrak,
	}
	if req.TglMulaiSewa != nil {
		if d, perr := time.Parse("2006-01-02", *req.TglMulaiSewa); perr == nil {
			in.TglMulaiSewa = &d
		}
	}

	row, err := ctrl.Fn.Create(c.UserContext(), in)
	if err != nil {
		log.Println("[ERROR] fn_kplt_create:", err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonCreated(c, row)
}

// GET /api/kplt — listing offset paging, per_page clamp [1,100].
func (ctrl *KpltController) List(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	filters, issues := helper.ResolveListFilters(c)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctrl.DB.Model(&model.KpltModel{})
	if !helperAuth.IsRegionalOrAboveUser(user) {
		if user.BranchID == nil {
			return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
				"User tidak memiliki branch")
		}
		q = q.Where("branch_id = ?", *user.BranchID)
	}
	if filters.Search != "" {
		q = q.Where("nama_pemilik ILIKE ? OR nomor_kontrak ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}
	if filters.Month != nil {
		q = q.Where("EXTRACT(MONTH FROM created_at) = ?", *filters.Month)
	}
	if filters.Year != nil {
		q = q.Where("EXTRACT(YEAR FROM created_at) = ?", *filters.Year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	var rows []model.KpltModel
	if err := q.Order("created_at DESC, id DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":       rows,
		"pagination": helper.BuildPagination(total, len(rows), paging),
	})
}

// GET /api/kplt/:id — detail via fn_kplt_detail (join ULOK + progress).
func (ctrl *KpltController) Detail(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	kpltID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "kplts", "id", kpltID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	row, err := ctrl.Fn.Detail(c.UserContext(), user.ID, kpltID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// PATCH /api/kplt/:id
func (ctrl *KpltController) Update(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionUpdate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	kpltID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "kplts", "id", kpltID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.KpltEditableKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.UpdateKpltRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.KpltModel
	if err := ctrl.DB.First(&m, "id = ?", kpltID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	req.ApplyToModel(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		log.Println("[ERROR] Gagal update KPLT:", err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, m)
}

// PATCH /api/kplt/:id/approval — approve (BM/RM) atau final-approve (GM),
// dibedakan query ?final=true.
func (ctrl *KpltController) Approval(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}

	// kewenangan approval dicek eksplisit per role, bukan lewat CanKplt
	final := c.Query("final") == "true"
	if final {
		if user.PositionNama != constants.RoleGeneralManager {
			return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
				constants.RoleErrorGeneral("final approval KPLT"))
		}
	} else if user.PositionNama != constants.RoleBranchManager &&
		user.PositionNama != constants.RoleRegionalManager {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			constants.RoleErrorBranchRegional("approval KPLT"))
	}

	kpltID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "kplts", "id", kpltID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.KpltApprovalKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.KpltApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	status, ok := req.Normalize()
	if !ok {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"kplt_approval"}, Message: "harus OK atau NOK"}})
	}

	row, err := ctrl.Fn.Approve(c.UserContext(), user.ID, kpltID, status, final)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// DELETE /api/kplt/:id — hanya location specialist.
func (ctrl *KpltController) Delete(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionDelete, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	kpltID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "kplts", "id", kpltID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if err := ctrl.DB.Delete(&model.KpltModel{}, "id = ?", kpltID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, fiber.Map{"deleted": true})
}
