// internals/features/progress/progress/model/progress_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProgressStatusBerjalan = "Berjalan"
	ProgressStatusSelesai  = "Selesai"
	ProgressStatusBatal    = "Batal"
)

// ProgressKpltModel: instance workflow pembangunan untuk satu KPLT.
// Branch tidak disimpan di sini — di-resolve lewat join ke kplts.
// Tiap tahap (MOU … grand opening) punya tepat satu record anak.
type ProgressKpltModel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	KpltID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:kplt_id" json:"kplt_id"`

	Status string `gorm:"size:20;not null;default:'Berjalan';column:status" json:"status"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (ProgressKpltModel) TableName() string { return "progress_kplts" }
