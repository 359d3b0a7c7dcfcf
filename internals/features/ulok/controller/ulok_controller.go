package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokasiku_backend/internals/constants"
	"lokasiku_backend/internals/features/ulok/dto"
	"lokasiku_backend/internals/features/ulok/model"
	"lokasiku_backend/internals/features/ulok/service"
	helper "lokasiku_backend/internals/helpers"
	helperAuth "lokasiku_backend/internals/helpers/auth"
	helperOSS "lokasiku_backend/internals/helpers/oss"
)

type UlokController struct {
	DB *gorm.DB
	Fn service.UlokService
}

func NewUlokController(db *gorm.DB) *UlokController {
	return &UlokController{DB: db, Fn: service.NewUlokService(db)}
}

// POST /api/ulok
func (ctrl *UlokController) Create(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionCreate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}
	if user.BranchID == nil {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.UlokEditableKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}

	var req dto.CreateUlokRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(user.ID, *user.BranchID)
	if err := ctrl.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] Gagal membuat ULOK:", err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonCreated(c, m)
}

// GET /api/ulok/:id
func (ctrl *UlokController) Detail(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	var m model.UlokModel
	if err := ctrl.DB.First(&m, "id = ?", ulokID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, m)
}

// PATCH /api/ulok/:id
func (ctrl *UlokController) Update(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionUpdate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.UlokEditableKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}

	var req dto.UpdateUlokRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.UlokModel
	if err := ctrl.DB.First(&m, "id = ?", ulokID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	req.ApplyToModel(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		log.Println("[ERROR] Gagal update ULOK:", err)
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, m)
}

// DELETE /api/ulok/:id — hanya location specialist (lihat tabel ACL).
func (ctrl *UlokController) Delete(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionDelete, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if err := ctrl.DB.Delete(&model.UlokModel{}, "id = ?", ulokID).Error; err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, fiber.Map{"deleted": true})
}

// PATCH /api/ulok/:id/approval — manager memutuskan OK/NOK via fn_ulok_approve.
func (ctrl *UlokController) Approval(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionUpdate, user) ||
		user.PositionNama == constants.RoleLocationSpecialist {
		// specialist boleh edit draft-nya tapi tidak memutuskan approval
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}
	if user.BranchID == nil {
		return helper.ErrorWithMessage(c, fiber.StatusForbidden, helper.ErrForbidden,
			"User tidak memiliki branch")
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	if issues := helper.CheckStrictBody(c.Body(), dto.UlokApprovalKeys); len(issues) > 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation, issues)
	}
	var req dto.UlokApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusUnprocessableEntity, helper.ErrValidation)
	}
	status, ok := req.Normalize()
	if !ok {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"approval_status"}, Message: "harus OK atau NOK"}})
	}

	row, err := ctrl.Fn.Approve(c.UserContext(), service.ApproveInput{
		UserID: user.ID,
		UlokID: ulokID,
		Status: status,
	})
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	return helper.JsonData(c, row)
}

// POST /api/ulok/:id/photo — upload foto lokasi ke OSS.
// multipart: field "section" + satu file per field name.
func (ctrl *UlokController) UploadPhoto(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionUpdate, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File) == 0 {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"file"}, Message: "file wajib dikirim"}})
	}
	section := "umum"
	if v := form.Value["section"]; len(v) > 0 && v[0] != "" {
		section = v[0]
	}

	uploaded := fiber.Map{}
	for field, fhs := range form.File {
		if len(fhs) == 0 {
			continue
		}
		key, url, uerr := helperOSS.UploadUlokPhoto(ulokID.String(), section, field, fhs[0])
		if uerr != nil {
			log.Println("[ERROR] Upload foto gagal:", uerr)
			return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, helper.ErrInternal, uerr.Error())
		}
		uploaded[field] = fiber.Map{"key": key, "url": url}
	}
	return helper.JsonData(c, uploaded)
}

// GET /api/ulok/:id/photo?key=... — signed URL preview foto yang tersimpan.
// URL berumur 1 jam; object key harus milik ULOK di path.
func (ctrl *UlokController) PhotoURL(c *fiber.Ctx) error {
	user := helperAuth.GetCurrentUser(c, ctrl.DB)
	if user == nil {
		return helper.Error(c, fiber.StatusUnauthorized, helper.ErrUnauthorized)
	}
	if !helperAuth.CanUlok(helperAuth.ActionRead, user) {
		return helper.Error(c, fiber.StatusForbidden, helper.ErrForbidden)
	}

	ulokID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"id"}, Message: "harus UUID yang valid"}})
	}

	access, err := helperAuth.ValidateBranchAccess(ctrl.DB, user, "uloks", "id", ulokID)
	if err != nil {
		return helper.RespondFnError(c, err)
	}
	if !access.Allowed {
		return access.Respond(c)
	}

	key := c.Query("key")
	if key == "" || !strings.HasPrefix(key, ulokID.String()+"/") {
		return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, helper.ErrValidation,
			[]helper.FieldIssue{{Path: []string{"key"}, Message: "object key tidak valid untuk ULOK ini"}})
	}

	url, err := helperOSS.SignedURL(key, 3600)
	if err != nil {
		log.Println("[ERROR] Sign URL gagal:", err)
		return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, helper.ErrInternal, err.Error())
	}
	return helper.JsonData(c, fiber.Map{"key": key, "url": url})
}
