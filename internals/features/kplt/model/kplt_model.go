// internals/features/kplt/model/kplt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KpltApprovalInProgress = "In Progress"
	KpltApprovalOK         = "OK"
	KpltApprovalNOK        = "NOK"
)

// KpltModel: komitmen lokasi franchise, turunan 1:1 dari ULOK yang sudah OK.
// Branch mengikuti ULOK induknya.
type KpltModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UlokID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:ulok_id" json:"ulok_id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index;column:branch_id" json:"branch_id"`

	NomorKontrak  *string    `gorm:"size:100;column:nomor_kontrak" json:"nomor_kontrak,omitempty"`
	NamaPemilik   string     `gorm:"size:150;column:nama_pemilik" json:"nama_pemilik"`
	NilaiKontrak  int64      `gorm:"column:nilai_kontrak" json:"nilai_kontrak"`
	MasaSewaTahun int        `gorm:"column:masa_sewa_tahun" json:"masa_sewa_tahun"`
	TglMulaiSewa  *time.Time `gorm:"type:date;column:tgl_mulai_sewa" json:"tgl_mulai_sewa,omitempty"`

	// status approval KPLT sendiri, terpisah dari approval ULOK
	KpltApproval string     `gorm:"size:20;not null;default:'In Progress';column:kplt_approval" json:"kplt_approval"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	TglApproval  *time.Time `gorm:"column:tgl_approval" json:"tgl_approval,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (KpltModel) TableName() string { return "kplts" }
