// internals/features/ulok_eksternal/model/ulok_eksternal_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UlokEksternalStatusInProgress = "In Progress"
	UlokEksternalStatusOK         = "OK"
	UlokEksternalStatusNOK        = "NOK"
)

// UlokEksternalModel: intake usulan lokasi dari pihak luar (pemilik lahan /
// broker). State machine sendiri; mencapai OK memicu pembuatan ULOK oleh
// trigger database — bukan tanggung jawab layer ini.
type UlokEksternalModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	NamaPemilik  string  `gorm:"size:150;not null;column:nama_pemilik" json:"nama_pemilik"`
	KontakTelp   string  `gorm:"size:30;not null;column:kontak_telp" json:"kontak_telp"`
	KontakEmail  *string `gorm:"size:255;column:kontak_email" json:"kontak_email,omitempty"`
	Alamat       string  `gorm:"type:text;not null;column:alamat" json:"alamat"`
	Kabupaten    string  `gorm:"size:100;not null;column:kabupaten" json:"kabupaten"`
	Provinsi     string  `gorm:"size:100;not null;column:provinsi" json:"provinsi"`
	Latitude     float64 `gorm:"column:latitude" json:"latitude"`
	Longitude    float64 `gorm:"column:longitude" json:"longitude"`
	LuasTanah    int     `gorm:"column:luas_tanah" json:"luas_tanah"`
	HargaPenawaran int64 `gorm:"column:harga_penawaran" json:"harga_penawaran"`
	Keterangan   *string `gorm:"type:text;column:keterangan" json:"keterangan,omitempty"`

	// assignment — dimutasi role berbeda (RM → branch, LM → penanggungjawab)
	BranchID        *uuid.UUID `gorm:"type:uuid;index;column:branch_id" json:"branch_id,omitempty"`
	Penanggungjawab *uuid.UUID `gorm:"type:uuid;column:penanggungjawab" json:"penanggungjawab,omitempty"`

	// In Progress | OK | NOK — transisi hanya lewat fn_ulok_eksternal_approve.
	StatusUlokEksternal string     `gorm:"size:20;not null;default:'In Progress';column:status_ulok_eksternal" json:"status_ulok_eksternal"`
	TglApproval         *time.Time `gorm:"column:tgl_approval" json:"tgl_approval,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (UlokEksternalModel) TableName() string { return "ulok_eksternal" }
