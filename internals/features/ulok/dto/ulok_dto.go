package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "lokasiku_backend/internals/features/ulok/model"
	helper "lokasiku_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// Whitelist key untuk schema strict (lihat helper.CheckStrictBody).
var (
	UlokEditableKeys = helper.AllowedKeys(
		"nama_lokasi", "alamat", "desa", "kecamatan", "kabupaten", "provinsi",
		"latitude", "longitude", "luas_tanah", "harga_sewa", "catatan_survey",
	)
	UlokApprovalKeys = helper.AllowedKeys("approval_status")
)

// Create: users_id & branch_id diambil dari identitas request (bukan body);
// approval_status, tgl_approval, created_at/updated_at dikontrol server.
type CreateUlokRequest struct {
	NamaLokasi    string  `json:"nama_lokasi" validate:"required,min=3,max=200"`
	Alamat        string  `json:"alamat" validate:"required,min=5"`
	Desa          string  `json:"desa" validate:"omitempty,max=100"`
	Kecamatan     string  `json:"kecamatan" validate:"omitempty,max=100"`
	Kabupaten     string  `json:"kabupaten" validate:"required,max=100"`
	Provinsi      string  `json:"provinsi" validate:"required,max=100"`
	Latitude      float64 `json:"latitude" validate:"required,min=-11,max=6"`
	Longitude     float64 `json:"longitude" validate:"required,min=95,max=141"`
	LuasTanah     int     `json:"luas_tanah" validate:"required,min=1"`
	HargaSewa     int64   `json:"harga_sewa" validate:"required,min=0"`
	CatatanSurvey *string `json:"catatan_survey" validate:"omitempty"`
}

func (r CreateUlokRequest) ToModel(userID, branchID uuid.UUID) *model.UlokModel {
	m := &model.UlokModel{
		UsersID:        userID,
		BranchID:       branchID,
		NamaLokasi:     strings.TrimSpace(r.NamaLokasi),
		Alamat:         strings.TrimSpace(r.Alamat),
		Desa:           strings.TrimSpace(r.Desa),
		Kecamatan:      strings.TrimSpace(r.Kecamatan),
		Kabupaten:      strings.TrimSpace(r.Kabupaten),
		Provinsi:       strings.TrimSpace(r.Provinsi),
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		LuasTanah:      r.LuasTanah,
		HargaSewa:      r.HargaSewa,
		ApprovalStatus: model.UlokStatusInProgress,
	}
	if r.CatatanSurvey != nil {
		cs := strings.TrimSpace(*r.CatatanSurvey)
		if cs != "" {
			m.CatatanSurvey = &cs
		}
	}
	return m
}

// Update (partial): hanya field bisnis; field server-controlled ditolak
// oleh cek strict di controller.
type UpdateUlokRequest struct {
	NamaLokasi    *string  `json:"nama_lokasi" validate:"omitempty,min=3,max=200"`
	Alamat        *string  `json:"alamat" validate:"omitempty,min=5"`
	Desa          *string  `json:"desa" validate:"omitempty,max=100"`
	Kecamatan     *string  `json:"kecamatan" validate:"omitempty,max=100"`
	Kabupaten     *string  `json:"kabupaten" validate:"omitempty,max=100"`
	Provinsi      *string  `json:"provinsi" validate:"omitempty,max=100"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,min=-11,max=6"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,min=95,max=141"`
	LuasTanah     *int     `json:"luas_tanah" validate:"omitempty,min=1"`
	HargaSewa     *int64   `json:"harga_sewa" validate:"omitempty,min=0"`
	CatatanSurvey *string  `json:"catatan_survey" validate:"omitempty"`
}

// ApplyToModel: terapkan hanya field yang dikirim.
func (r *UpdateUlokRequest) ApplyToModel(m *model.UlokModel) {
	if r.NamaLokasi != nil {
		m.NamaLokasi = strings.TrimSpace(*r.NamaLokasi)
	}
	if r.Alamat != nil {
		m.Alamat = strings.TrimSpace(*r.Alamat)
	}
	if r.Desa != nil {
		m.Desa = strings.TrimSpace(*r.Desa)
	}
	if r.Kecamatan != nil {
		m.Kecamatan = strings.TrimSpace(*r.Kecamatan)
	}
	if r.Kabupaten != nil {
		m.Kabupaten = strings.TrimSpace(*r.Kabupaten)
	}
	if r.Provinsi != nil {
		m.Provinsi = strings.TrimSpace(*r.Provinsi)
	}
	if r.Latitude != nil {
		m.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		m.Longitude = *r.Longitude
	}
	if r.LuasTanah != nil {
		m.LuasTanah = *r.LuasTanah
	}
	if r.HargaSewa != nil {
		m.HargaSewa = *r.HargaSewa
	}
	if r.CatatanSurvey != nil {
		cs := strings.TrimSpace(*r.CatatanSurvey)
		if cs == "" {
			m.CatatanSurvey = nil
		} else {
			m.CatatanSurvey = &cs
		}
	}

	now := time.Now()
	m.UpdatedAt = &now
}

// Approval: satu-satunya jalur mengubah approval_status.
// Diterima case-insensitive "ok"/"nok", dinormalisasi sebelum ke prosedur.
type UlokApprovalRequest struct {
	ApprovalStatus string `json:"approval_status" validate:"required"`
}

// Normalize: "ok"/"OK" → OK, "nok"/"NOK" → NOK; selain itu false.
func (r UlokApprovalRequest) Normalize() (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(r.ApprovalStatus)) {
	case "OK":
		return model.UlokStatusOK, true
	case "NOK":
		return model.UlokStatusNOK, true
	}
	return "", false
}
