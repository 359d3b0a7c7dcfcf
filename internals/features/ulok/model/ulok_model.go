// internals/features/ulok/model/ulok_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status approval ULOK (usulan lokasi).
const (
	UlokStatusInProgress = "In Progress"
	UlokStatusOK         = "OK"
	UlokStatusNOK        = "NOK"
)

type UlokModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UsersID  uuid.UUID `gorm:"type:uuid;not null;column:users_id" json:"users_id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index;column:branch_id" json:"branch_id"`

	NamaLokasi string  `gorm:"size:200;not null;column:nama_lokasi" json:"nama_lokasi"`
	Alamat     string  `gorm:"type:text;not null;column:alamat" json:"alamat"`
	Desa       string  `gorm:"size:100;column:desa" json:"desa"`
	Kecamatan  string  `gorm:"size:100;column:kecamatan" json:"kecamatan"`
	Kabupaten  string  `gorm:"size:100;not null;column:kabupaten" json:"kabupaten"`
	Provinsi   string  `gorm:"size:100;not null;column:provinsi" json:"provinsi"`
	Latitude   float64 `gorm:"column:latitude" json:"latitude"`
	Longitude  float64 `gorm:"column:longitude" json:"longitude"`

	LuasTanah     int     `gorm:"column:luas_tanah" json:"luas_tanah"`         // m2
	HargaSewa     int64   `gorm:"column:harga_sewa" json:"harga_sewa"`         // per tahun
	CatatanSurvey *string `gorm:"type:text;column:catatan_survey" json:"catatan_survey,omitempty"`
	FotoLokasiURL *string `gorm:"type:text;column:foto_lokasi_url" json:"foto_lokasi_url,omitempty"`

	// In Progress | OK | NOK — transisi hanya lewat fn_ulok_approve.
	ApprovalStatus string     `gorm:"size:20;not null;default:'In Progress';column:approval_status" json:"approval_status"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	TglApproval    *time.Time `gorm:"column:tgl_approval" json:"tgl_approval,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (UlokModel) TableName() string { return "uloks" }

// UlokEksistingModel: toko eksisting (read-only, untuk peta/benchmark sewa).
type UlokEksistingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index;column:branch_id" json:"branch_id"`
	NamaToko  string    `gorm:"size:200;not null;column:nama_toko" json:"nama_toko"`
	Alamat    string    `gorm:"type:text;not null;column:alamat" json:"alamat"`
	Kabupaten string    `gorm:"size:100;column:kabupaten" json:"kabupaten"`
	Provinsi  string    `gorm:"size:100;column:provinsi" json:"provinsi"`
	Latitude  float64   `gorm:"column:latitude" json:"latitude"`
	Longitude float64   `gorm:"column:longitude" json:"longitude"`
	TglBuka   *time.Time `gorm:"type:date;column:tgl_buka" json:"tgl_buka,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
}

func (UlokEksistingModel) TableName() string { return "ulok_eksisting" }
