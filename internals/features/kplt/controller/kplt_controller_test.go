package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lokasiku_backend/internals/constants"
	"lokasiku_backend/internals/features/kplt/service"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

type stubKpltService struct {
	approveCalled bool
	gotFinal      bool
}

func (s *stubKpltService) Create(context.Context, service.CreateInput) (datatypes.JSON, error) {
	return nil, nil
}

func (s *stubKpltService) Detail(context.Context, uuid.UUID, uuid.UUID) (datatypes.JSON, error) {
	return nil, nil
}

func (s *stubKpltService) Approve(_ context.Context, _, _ uuid.UUID, _ string, final bool) (datatypes.JSON, error) {
	s.approveCalled = true
	s.gotFinal = final
	return datatypes.JSON(`{}`), nil
}

// DB nil: gerbang role approval harus memutus sebelum akses database.
func newKpltApp(fn service.KpltService, user *helperAuth.CurrentUser) *fiber.App {
	ctrl := &KpltController{Fn: fn}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals("current_user", user)
		}
		return c.Next()
	})
	app.Patch("/api/kplt/:id/approval", ctrl.Approval)
	return app
}

func kpltUser(role string) *helperAuth.CurrentUser {
	branch := uuid.New()
	return &helperAuth.CurrentUser{ID: uuid.New(), PositionNama: role, BranchID: &branch}
}

func patchKpltApproval(t *testing.T, app *fiber.App, target string) (map[string]interface{}, int) {
	t.Helper()
	req := httptest.NewRequest("PATCH", target, strings.NewReader(`{"kplt_approval":"OK"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	return body, resp.StatusCode
}

// Approval KPLT biasa: hanya branch manager / regional manager.
func TestKpltApprovalHanyaBranchRegional(t *testing.T) {
	target := "/api/kplt/" + uuid.NewString() + "/approval"
	ditolak := []string{
		constants.RoleLocationSpecialist,
		constants.RoleLocationManager,
		constants.RoleGeneralManager,
		constants.RoleAdminBranch,
		"intern",
	}
	for _, role := range ditolak {
		stub := &stubKpltService{}
		app := newKpltApp(stub, kpltUser(role))
		body, code := patchKpltApproval(t, app, target)
		if code != fiber.StatusForbidden {
			t.Errorf("%s: status = %d, mau 403", role, code)
		}
		if body["error"] != "Forbidden" {
			t.Errorf("%s: error = %v", role, body["error"])
		}
		if stub.approveCalled {
			t.Errorf("%s: prosedur tidak boleh dipanggil", role)
		}
	}
}

// Final approval: khusus general manager; branch/regional manager ditolak.
func TestKpltFinalApprovalHanyaGeneral(t *testing.T) {
	target := "/api/kplt/" + uuid.NewString() + "/approval?final=true"
	ditolak := []string{
		constants.RoleBranchManager,
		constants.RoleRegionalManager,
		constants.RoleLocationSpecialist,
		constants.RoleAdminBranch,
	}
	for _, role := range ditolak {
		stub := &stubKpltService{}
		app := newKpltApp(stub, kpltUser(role))
		body, code := patchKpltApproval(t, app, target)
		if code != fiber.StatusForbidden {
			t.Errorf("%s: status = %d, mau 403", role, code)
		}
		msg, _ := body["message"].(string)
		if !strings.Contains(msg, "general manager") {
			t.Errorf("%s: message = %q, harus menyebut general manager", role, msg)
		}
		if stub.approveCalled {
			t.Errorf("%s: prosedur tidak boleh dipanggil", role)
		}
	}
}

func TestKpltApprovalTanpaSesi(t *testing.T) {
	stub := &stubKpltService{}
	app := newKpltApp(stub, nil)
	body, code := patchKpltApproval(t, app, "/api/kplt/"+uuid.NewString()+"/approval")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, mau 401", code)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v", body["error"])
	}
	if stub.approveCalled {
		t.Error("prosedur tidak boleh dipanggil tanpa sesi")
	}
}
