package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "lokasiku_backend/internals/features/kplt/model"
	helper "lokasiku_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

var (
	KpltCreateKeys = helper.AllowedKeys(
		"ulok", "nama_pemilik", "nilai_kontrak", "masa_sewa_tahun",
		"tgl_mulai_sewa", "nomor_kontrak",
	)
	KpltEditableKeys = helper.AllowedKeys(
		"nama_pemilik", "nilai_kontrak", "masa_sewa_tahun",
		"tgl_mulai_sewa", "nomor_kontrak",
	)
	KpltApprovalKeys = helper.AllowedKeys("kplt_approval")
)

// Create: referensi ULOK lewat key "ulok" (bukan "ulok_id" — suffix _id
// ditolak cek strict). Validasi "ULOK harus OK" milik fn_kplt_create.
type CreateKpltRequest struct {
	Ulok          uuid.UUID `json:"ulok" validate:"required"`
	NamaPemilik   string    `json:"nama_pemilik" validate:"required,min=3,max=150"`
	NilaiKontrak  int64     `json:"nilai_kontrak" validate:"required,min=0"`
	MasaSewaTahun int       `json:"masa_sewa_tahun" validate:"required,min=1,max=30"`
	TglMulaiSewa  *string   `json:"tgl_mulai_sewa" validate:"omitempty,datetime=2006-01-02"`
	NomorKontrak  *string   `json:"nomor_kontrak" validate:"omitempty,max=100"`
}

type UpdateKpltRequest struct {
	NamaPemilik   *string `json:"nama_pemilik" validate:"omitempty,min=3,max=150"`
	NilaiKontrak  *int64  `json:"nilai_kontrak" validate:"omitempty,min=0"`
	MasaSewaTahun *int    `json:"masa_sewa_tahun" validate:"omitempty,min=1,max=30"`
	TglMulaiSewa  *string `json:"tgl_mulai_sewa" validate:"omitempty,datetime=2006-01-02"`
	NomorKontrak  *string `json:"nomor_kontrak" validate:"omitempty,max=100"`
}

func (r *UpdateKpltRequest) ApplyToModel(m *model.KpltModel) {
	if r.NamaPemilik != nil {
		m.NamaPemilik = strings.TrimSpace(*r.NamaPemilik)
	}
	if r.NilaiKontrak != nil {
		m.NilaiKontrak = *r.NilaiKontrak
	}
	if r.MasaSewaTahun != nil {
		m.MasaSewaTahun = *r.MasaSewaTahun
	}
	if r.TglMulaiSewa != nil {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.TglMulaiSewa)); err == nil {
			m.TglMulaiSewa = &d
		}
	}
	if r.NomorKontrak != nil {
		nk := strings.TrimSpace(*r.NomorKontrak)
		if nk == "" {
			m.NomorKontrak = nil
		} else {
			m.NomorKontrak = &nk
		}
	}

	now := time.Now()
	m.UpdatedAt = &now
}

// Approval KPLT: OK/NOK case-insensitive, jalur terpisah dari update.
type KpltApprovalRequest struct {
	KpltApproval string `json:"kplt_approval" validate:"required"`
}

func (r KpltApprovalRequest) Normalize() (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(r.KpltApproval)) {
	case "OK":
		return model.KpltApprovalOK, true
	case "NOK":
		return model.KpltApprovalNOK, true
	}
	return "", false
}
