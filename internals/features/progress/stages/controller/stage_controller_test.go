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
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lokasiku_backend/internals/constants"
	"lokasiku_backend/internals/features/progress/stages/service"
	helperAuth "lokasiku_backend/internals/helpers/auth"
)

// stub prosedur: merekam panggilan, balasan di-set per test
type stubStageService struct {
	out    datatypes.JSON
	err    error
	called bool

	gotStage   string
	gotApprove service.ApproveInput
}

func (s *stubStageService) Approve(_ context.Context, stageKey string, in service.ApproveInput) (datatypes.JSON, error) {
	s.called = true
	s.gotStage = stageKey
	s.gotApprove = in
	return s.out, s.err
}

func (s *stubStageService) Upsert(_ context.Context, stageKey string, _ service.UpsertInput) (datatypes.JSON, error) {
	s.called = true
	s.gotStage = stageKey
	return s.out, s.err
}

func (s *stubStageService) History(_ context.Context, stageKey string, _ uuid.UUID) ([]service.HistoryRow, error) {
	s.called = true
	s.gotStage = stageKey
	return nil, s.err
}

func allowAccess(branchID uuid.UUID) func(*gorm.DB, *helperAuth.CurrentUser, uuid.UUID) (helperAuth.AccessResult, error) {
	return func(*gorm.DB, *helperAuth.CurrentUser, uuid.UUID) (helperAuth.AccessResult, error) {
		return helperAuth.AccessResult{Allowed: true, BranchID: &branchID}, nil
	}
}

func denyAccess(status int) func(*gorm.DB, *helperAuth.CurrentUser, uuid.UUID) (helperAuth.AccessResult, error) {
	return func(*gorm.DB, *helperAuth.CurrentUser, uuid.UUID) (helperAuth.AccessResult, error) {
		return helperAuth.AccessResult{Allowed: false, Status: status, Message: "Data tidak ditemukan"}, nil
	}
}

// app test: user (kalau ada) disuntik lewat Locals seperti hasil resolve middleware
func newStageApp(ctrl *StageController, user *helperAuth.CurrentUser) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals("current_user", user)
		}
		return c.Next()
	})
	app.Patch("/api/progress/:id/:stage/approval", ctrl.Approval)
	app.Post("/api/progress/:id/:stage", ctrl.Upsert)
	app.Get("/api/progress/:id/:stage/history", ctrl.History)
	return app
}

func specialistUser(branchID uuid.UUID) *helperAuth.CurrentUser {
	return &helperAuth.CurrentUser{
		ID:           uuid.New(),
		PositionNama: constants.RoleLocationSpecialist,
		BranchID:     &branchID,
	}
}

func patchApproval(t *testing.T, app *fiber.App, path, body string) (map[string]interface{}, int) {
	t.Helper()
	req := httptest.NewRequest("PATCH", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return parsed, resp.StatusCode
}

// Location specialist approve Notaris "SELESAI" → 200, status ternormalisasi,
// tgl_selesai di-set server (di sini lewat balasan stub prosedur).
func TestApprovalNotarisSelesai(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{
		out: datatypes.JSON(`{"final_status_notaris":"Selesai","tgl_selesai_notaris":"2025-06-10T08:00:00Z"}`),
	}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	progressID := uuid.New()
	body, code := patchApproval(t, app,
		"/api/progress/"+progressID.String()+"/notaris/approval",
		`{"final_status_notaris":"SELESAI"}`)

	if code != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200 (body: %v)", code, body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["final_status_notaris"] != "Selesai" {
		t.Errorf("data.final_status_notaris = %v, mau Selesai", data["final_status_notaris"])
	}
	if data["tgl_selesai_notaris"] == nil {
		t.Error("tgl_selesai_notaris harus di-set server")
	}

	if !stub.called || stub.gotStage != "notaris" {
		t.Fatalf("prosedur dipanggil=%v stage=%q", stub.called, stub.gotStage)
	}
	if stub.gotApprove.FinalStatus != "Selesai" {
		t.Errorf("status ke prosedur = %q, harus sudah dinormalisasi", stub.gotApprove.FinalStatus)
	}
	if stub.gotApprove.ProgressID != progressID {
		t.Error("progress id tidak diteruskan")
	}
	if stub.gotApprove.BranchID == nil || *stub.gotApprove.BranchID != branch {
		t.Error("branch hasil guard tidak diteruskan")
	}
}

// Renovasi dicoba sebelum Notaris Selesai → prosedur menolak → 422 Precondition.
func TestApprovalRenovasiPrasyaratKurang(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{
		err: &pq.Error{Code: "P0001", Message: "Syarat Notaris belum terpenuhi"},
	}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	body, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/renovasi/approval",
		`{"final_status_renovasi":"selesai"}`)

	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, mau 422", code)
	}
	if body["error"] != "Precondition Failed" {
		t.Errorf("error = %v", body["error"])
	}
	if body["message"] != "Syarat Notaris belum terpenuhi" {
		t.Errorf("message = %v", body["message"])
	}
}

// Approve ulang tahap yang sudah final → 409, tidak pernah 200 diam-diam.
func TestApprovalSudahFinal(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{
		err: &pq.Error{Code: "P0001", Message: "Stage already finalized"},
	}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	body, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/mou/approval",
		`{"final_status_mou":"batal"}`)

	if code != fiber.StatusConflict {
		t.Fatalf("status = %d, mau 409 (body: %v)", code, body)
	}
	if body["error"] != "Conflict" {
		t.Errorf("error = %v", body["error"])
	}
}

// Tanpa sesi → 401 dan prosedur tidak pernah dipanggil.
func TestApprovalTanpaSesi(t *testing.T) {
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(uuid.New())}
	app := newStageApp(ctrl, nil)

	body, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/notaris/approval",
		`{"final_status_notaris":"selesai"}`)

	if code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, mau 401", code)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v", body["error"])
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil tanpa sesi")
	}
}

// Role tak dikenal → 403 sebelum apa pun lainnya.
func TestApprovalRoleTakDikenal(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	user := &helperAuth.CurrentUser{ID: uuid.New(), PositionNama: "intern", BranchID: &branch}
	app := newStageApp(ctrl, user)

	_, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/notaris/approval",
		`{"final_status_notaris":"selesai"}`)

	if code != fiber.StatusForbidden {
		t.Fatalf("status = %d, mau 403", code)
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil")
	}
}

// Guard lintas branch menolak dengan 404 — prosedur tidak tersentuh.
func TestApprovalLintasBranch(t *testing.T) {
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: denyAccess(fiber.StatusNotFound)}
	app := newStageApp(ctrl, specialistUser(uuid.New()))

	body, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/notaris/approval",
		`{"final_status_notaris":"selesai"}`)

	if code != fiber.StatusNotFound {
		t.Fatalf("status = %d, mau 404", code)
	}
	if body["error"] != "Not Found" {
		t.Errorf("error = %v", body["error"])
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil")
	}
}

// Nilai enum salah → 422 lokal, prosedur tidak dipanggil.
func TestApprovalEnumSalah(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	body, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/notaris/approval",
		`{"final_status_notaris":"done"}`)

	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, mau 422 (body: %v)", code, body)
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil untuk input invalid")
	}
}

// Tahap tak dikenal di URL → 404.
func TestApprovalTahapTakDikenal(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	_, code := patchApproval(t, app,
		"/api/progress/"+uuid.NewString()+"/pembukaan/approval",
		`{"final_status_pembukaan":"selesai"}`)

	if code != fiber.StatusNotFound {
		t.Fatalf("status = %d, mau 404", code)
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil")
	}
}

// Path param bukan UUID → 422.
func TestApprovalParamBukanUUID(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	_, code := patchApproval(t, app,
		"/api/progress/bukan-uuid/notaris/approval",
		`{"final_status_notaris":"selesai"}`)

	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, mau 422", code)
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil")
	}
}

// Upsert menolak final_status_* — transisi hanya lewat endpoint approval.
func TestUpsertTolakFinalStatus(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	req := httptest.NewRequest("POST",
		"/api/progress/"+uuid.NewString()+"/notaris",
		strings.NewReader(`{"final_status_notaris":"Selesai"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, mau 422", resp.StatusCode)
	}
	if stub.called {
		t.Error("prosedur tidak boleh dipanggil")
	}
}

// Upsert field bisnis valid diteruskan ke prosedur tahap yang benar.
func TestUpsertFieldBisnis(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{out: datatypes.JSON(`{"nama_notaris":"Budi, S.H."}`)}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	req := httptest.NewRequest("POST",
		"/api/progress/"+uuid.NewString()+"/notaris",
		strings.NewReader(`{"nama_notaris":"Budi, S.H.","nomor_akta":"12/2025"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	if !stub.called || stub.gotStage != "notaris" {
		t.Errorf("dipanggil=%v stage=%q", stub.called, stub.gotStage)
	}
}

// Echo upsert hanya memuat field bisnis: id, foreign key, final_status_*
// dan tgl_selesai_* dari balasan prosedur tidak boleh bocor ke client.
func TestUpsertEchoTanpaFieldServer(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{out: datatypes.JSON(
		`{"id":"c2f6f1a0-0000-0000-0000-000000000001",` +
			`"progress_kplt_id":"c2f6f1a0-0000-0000-0000-000000000002",` +
			`"final_status_notaris":"Dalam Proses",` +
			`"tgl_selesai_notaris":null,` +
			`"nama_notaris":"Budi, S.H."}`)}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	req := httptest.NewRequest("POST",
		"/api/progress/"+uuid.NewString()+"/notaris",
		strings.NewReader(`{"nama_notaris":"Budi, S.H."}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["nama_notaris"] != "Budi, S.H." {
		t.Errorf("nama_notaris = %v, field bisnis harus tetap ada", data["nama_notaris"])
	}
	for _, key := range []string{"id", "progress_kplt_id", "final_status_notaris", "tgl_selesai_notaris"} {
		if _, ada := data[key]; ada {
			t.Errorf("field %s tidak boleh ikut di echo", key)
		}
	}
}

// History: bentuk respon {data:{count, items}} dan items tidak pernah null.
func TestHistoryBentukRespon(t *testing.T) {
	branch := uuid.New()
	stub := &stubStageService{}
	ctrl := &StageController{Fn: stub, Access: allowAccess(branch)}
	app := newStageApp(ctrl, specialistUser(branch))

	req := httptest.NewRequest("GET",
		"/api/progress/"+uuid.NewString()+"/mou/history", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, mau 200", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Data struct {
			Count int               `json:"count"`
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Count != 0 {
		t.Errorf("count = %d, mau 0", body.Data.Count)
	}
	if body.Data.Items == nil {
		t.Error("items harus [] bukan null")
	}
}
