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
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

type stubEksternalService struct {
	approveCalled bool
}

func (s *stubEksternalService) Approve(context.Context, uuid.UUID, uuid.UUID, string) (datatypes.JSON, error) {
	s.approveCalled = true
	return datatypes.JSON(`{}`), nil
}

func (s *stubEksternalService) AssignBranch(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (datatypes.JSON, error) {
	return nil, nil
}

func (s *stubEksternalService) AssignPenanggungjawab(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (datatypes.JSON, error) {
	return nil, nil
}

// DB nil: gerbang role harus memutus sebelum akses database.
func newEksternalApp(stub *stubEksternalService, user *helperAuth.CurrentUser) *fiber.App {
	ctrl := &UlokEksternalController{Fn: stub}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals("current_user", user)
		}
		return c.Next()
	})
	app.Patch("/api/ulok_eksternal/:id/approval", ctrl.Approval)
	return app
}

// Approval intake eksternal: khusus location specialist, role lain 403.
func TestEksternalApprovalHanyaSpecialist(t *testing.T) {
	target := "/api/ulok_eksternal/" + uuid.NewString() + "/approval"
	ditolak := []string{
		constants.RoleLocationManager,
		constants.RoleBranchManager,
		constants.RoleRegionalManager,
		constants.RoleGeneralManager,
		constants.RoleAdminBranch,
		"intern",
	}
	for _, role := range ditolak {
		branch := uuid.New()
		stub := &stubEksternalService{}
		app := newEksternalApp(stub, &helperAuth.CurrentUser{
			ID: uuid.New(), PositionNama: role, BranchID: &branch,
		})

		req := httptest.NewRequest("PATCH", target,
			strings.NewReader(`{"status_ulok_eksternal":"OK"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("%s: status = %d, mau 403", role, resp.StatusCode)
		}
		var body map[string]interface{}
		_ = json.Unmarshal(raw, &body)
		msg, _ := body["message"].(string)
		if !strings.Contains(msg, "location specialist") {
			t.Errorf("%s: message = %q, harus menyebut location specialist", role, msg)
		}
		if stub.approveCalled {
			t.Errorf("%s: prosedur tidak boleh dipanggil", role)
		}
	}
}

// Specialist tanpa branch tetap ditolak (403) sebelum prosedur.
func TestEksternalApprovalSpecialistTanpaBranch(t *testing.T) {
	stub := &stubEksternalService{}
	app := newEksternalApp(stub, &helperAuth.CurrentUser{
		ID: uuid.New(), PositionNama: constants.RoleLocationSpecialist,
	})

	req := httptest.NewRequest("PATCH",
		"/api/ulok_eksternal/"+uuid.NewString()+"/approval",
		strings.NewReader(`{"status_ulok_eksternal":"OK"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, mau 403", resp.StatusCode)
	}
	if stub.approveCalled {
		t.Error("prosedur tidak boleh dipanggil")
	}
}
