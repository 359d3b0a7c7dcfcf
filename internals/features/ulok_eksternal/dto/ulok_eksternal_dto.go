package dto

import (
	"strings"

	"github.com/google/uuid"

	model "lokasiku_backend/internals/features/ulok_eksternal/model"
	helper "lokasiku_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

var (
	IntakeKeys = helper.AllowedKeys(
		"nama_pemilik", "kontak_telp", "kontak_email", "alamat", "kabupaten",
		"provinsi", "latitude", "longitude", "luas_tanah", "harga_penawaran",
		"keterangan",
	)
	ApprovalKeys        = helper.AllowedKeys("status_ulok_eksternal")
	AssignBranchKeys    = helper.AllowedKeys("branch")
	AssignPJKeys        = helper.AllowedKeys("penanggungjawab")
)

// Intake: jalur masuk publik (bukan lewat canUlokEksternal create).
type IntakeRequest struct {
	NamaPemilik    string  `json:"nama_pemilik" validate:"required,min=3,max=150"`
	KontakTelp     string  `json:"kontak_telp" validate:"required,min=8,max=30"`
	KontakEmail    *string `json:"kontak_email" validate:"omitempty,email"`
	Alamat         string  `json:"alamat" validate:"required,min=5"`
	Kabupaten      string  `json:"kabupaten" validate:"required,max=100"`
	Provinsi       string  `json:"provinsi" validate:"required,max=100"`
	Latitude       float64 `json:"latitude" validate:"required,min=-11,max=6"`
	Longitude      float64 `json:"longitude" validate:"required,min=95,max=141"`
	LuasTanah      int     `json:"luas_tanah" validate:"required,min=1"`
	HargaPenawaran int64   `json:"harga_penawaran" validate:"required,min=0"`
	Keterangan     *string `json:"keterangan" validate:"omitempty"`
}

func (r IntakeRequest) ToModel() *model.UlokEksternalModel {
	m := &model.UlokEksternalModel{
		NamaPemilik:         strings.TrimSpace(r.NamaPemilik),
		KontakTelp:          strings.TrimSpace(r.KontakTelp),
		Alamat:              strings.TrimSpace(r.Alamat),
		Kabupaten:           strings.TrimSpace(r.Kabupaten),
		Provinsi:            strings.TrimSpace(r.Provinsi),
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		LuasTanah:           r.LuasTanah,
		HargaPenawaran:      r.HargaPenawaran,
		StatusUlokEksternal: model.UlokEksternalStatusInProgress,
	}
	if r.KontakEmail != nil {
		e := strings.TrimSpace(*r.KontakEmail)
		if e != "" {
			m.KontakEmail = &e
		}
	}
	if r.Keterangan != nil {
		k := strings.TrimSpace(*r.Keterangan)
		if k != "" {
			m.Keterangan = &k
		}
	}
	return m
}

// Approval oleh location specialist: OK/NOK, case-insensitive.
type ApprovalRequest struct {
	StatusUlokEksternal string `json:"status_ulok_eksternal" validate:"required"`
}

func (r ApprovalRequest) Normalize() (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(r.StatusUlokEksternal)) {
	case "OK":
		return model.UlokEksternalStatusOK, true
	case "NOK":
		return model.UlokEksternalStatusNOK, true
	}
	return "", false
}

// AssignBranch oleh regional manager.
type AssignBranchRequest struct {
	Branch uuid.UUID `json:"branch" validate:"required"`
}

// AssignPenanggungjawab oleh location manager.
type AssignPJRequest struct {
	Penanggungjawab uuid.UUID `json:"penanggungjawab" validate:"required"`
}
