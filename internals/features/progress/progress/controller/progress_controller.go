package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokasiku_backend/internals/features/progress/progress/model"
	"lokasiku_backend/internals/features/progress/progress/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

type ProgressController struct {
	DB *gorm.DB
	Fn service.ProgressService
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db, Fn: service.NewProgressService(db)}
}

// GET /api/progress — listing offset paging, per_page clamp [1,100].
// Branch scoping lewat join ke kplts karena progress tidak menyimpan branch.
func (ctrl *ProgressController) List(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanProgressKplt(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	filters, issues := helper.ResolveListFilters(c)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctrl.DB.Model(&model.ProgressKpltModel{}).
		Joins("JOIN kplts ON kplts.id = progress_kplts.kplt_id AND kplts.deleted_at IS NULL")
	if !helperAuth.IsRegionalOrAboveUser(user) {
		if user.BranchID == nil {
			return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
				"User tidak memiliki branch")
		}
		q = q.Where("kplts.branch_id = ?", *user.BranchID)
	}
	if filters.Search != "" {
		q = q.Where("kplts.nama_pemilik ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.Month != nil {
		q = q.Where("EXTRACT(MONTH FROM progress_kplts.created_at) = ?", *filters.Month)
	}
	if filters.Year != nil {
		q = q.Where("EXTRACT(YEAR FROM progress_kplts.created_at) = ?", *filters.Year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	var rows []model.ProgressKpltModel
	if err := q.Order("progress_kplts.created_at DESC, progress_kplts.id DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":       rows,
		"pagination": helper.BuildPagination(total, len(rows), paging),
	})
}

// GET /api/progress/:id — detail + timeline keenam tahap.
// Respon: {success:true, data:{progress, timeline}}.
func (ctrl *ProgressController) Detail(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanProgressKplt(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	progressID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := service.ValidateProgressAccess(ctrl.DB, user, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	var progress model.ProgressKpltModel
	if err := ctrl.DB.First(&progress, "id = ?", progressID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}

	timeline, err := ctrl.Fn.Timeline(c.UserContext(), user.ID, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}

	return helper.JsonSuccess(c, fiber.Map{
		"progress": progress,
		"timeline": timeline,
	})
}
