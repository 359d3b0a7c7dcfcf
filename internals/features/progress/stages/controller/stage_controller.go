package controller

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	progressService "lokasiku_backend/internals/features/progress/progress/service"
	"lokasiku_backend/internals/features/progress/stages/dto"
	"lokasiku_backend/internals/features/progress/stages/model"
	"lokasiku_backend/internals/features/progress/stages/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

// Satu controller untuk keenam tahap — tahap diambil dari segmen URL dan
// dicocokkan ke registry. Urutan cek di Approval dipertahankan persis:
// auth → kapabilitas → branch user → path param → scope → body → fn.
type StageController struct {
	DB *gorm.DB
	Fn service.StageService
	// Access bisa diganti saat test; default guard progress→kplt
	Access func(*gorm.DB, *helperAuth.CurrentUser, uuid.UUID) (helperAuth.AccessResult, error)
}

func NewStageController(db *gorm.DB) *StageController {
	return &StageController{
		DB:     db,
		Fn:     service.NewStageService(db),
		Access: progressService.ValidateProgressAccess,
	}
}

// PATCH /api/progress/:id/:stage/approval
// Body: {"final_status_<stage>": "selesai"|"batal"} (case-insensitive).
func (ctrl *StageController) Approval(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanApproveStage(user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}
	if user.BranchID == nil && !helperAuth.IsRegionalOrAboveUser(user) {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	def, ok := model.StageByKey(c.Params("stage"))
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, helper.ErrNotFound)
	}
	progressID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := ctrl.Access(ctrl.DB, user, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	status, issues := dto.ParseApproval(c.Body(), def)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}

	row, err := ctrl.Fn.Approve(c.UserContext(), def.Key, service.ApproveInput{
		UserID:      user.ID,
		BranchID:    access.BranchID,
		ProgressID:  progressID,
		FinalStatus: status,
	})
	if err != nil {
		log.Printf("[ERROR] fn_%s_approve: %v", def.Key, err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// POST|PATCH /api/progress/:id/:stage — isi/ubah field bisnis tahap.
// final_status_* dan tgl_selesai_* ditolak di sini; transisi status hanya
// lewat endpoint approval.
func (ctrl *StageController) Upsert(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanKplt(helperAuth.ActionUpdate, user) &&
		!helperAuth.CanProgressKplt(helperAuth.ActionUpdate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}
	if user.BranchID == nil && !helperAuth.IsRegionalOrAboveUser(user) {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	def, ok := model.StageByKey(c.Params("stage"))
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, helper.ErrNotFound)
	}
	progressID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := ctrl.Access(ctrl.DB, user, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	payload, issues := dto.ParseUpsert(c.Body(), def)
	if len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}

	row, err := ctrl.Fn.Upsert(c.UserContext(), def.Key, service.UpsertInput{
		UserID:     user.ID,
		BranchID:   access.BranchID,
		ProgressID: progressID,
		Payload:    datatypes.JSON(raw),
	})
	if err != nil {
		log.Printf("[ERROR] fn_%s_upsert: %v", def.Key, err)
		return helper.RespondFnError(c, err)
	}

	// echo hanya field bisnis; id/fk/status final/timestamp internal disaring
	var echo map[string]interface{}
	if err := sonic.Unmarshal(row, &echo); err == nil && echo != nil {
		return helper.JsonData(c, helper.StripServerControlledFields(echo))
	}
	return helper.JsonData(c, row)
}

// GET /api/progress/:id/:stage/history
// Respon: {data:{count, items:[{id, created_at, status_from, status_to, data}]}}
func (ctrl *StageController) History(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanProgressKplt(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	def, ok := model.StageByKey(c.Params("stage"))
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, helper.ErrNotFound)
	}
	progressID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := ctrl.Access(ctrl.DB, user, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	rows, err := ctrl.Fn.History(c.UserContext(), def.Key, progressID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if rows == nil {
		rows = []service.HistoryRow{}
	}
	return helper.JsonData(c, fiber.Map{
		"count": len(rows),
		"items": rows,
	})
}
