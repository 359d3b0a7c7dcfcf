// internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Email      string     `gorm:"size:255;not null;uniqueIndex;column:email" json:"email"`
	Nama       string     `gorm:"size:150;not null;column:nama" json:"nama"`
	Password   string     `gorm:"size:255;not null;column:password" json:"-"`
	BranchID   *uuid.UUID `gorm:"type:uuid;column:branch_id" json:"branch_id,omitempty"`
	PositionID *uuid.UUID `gorm:"type:uuid;column:position_id" json:"position_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Branch   *BranchModel   `gorm:"foreignKey:BranchID" json:"-"`
	Position *PositionModel `gorm:"foreignKey:PositionID" json:"-"`
}

func (UserModel) TableName() string { return "users" }

type BranchModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Nama string    `gorm:"size:150;not null;column:nama" json:"nama"`
	Kode string    `gorm:"size:20;not null;uniqueIndex;column:kode" json:"kode"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:created_at" json:"created_at"`
}

func (BranchModel) TableName() string { return "branches" }

// PositionModel: nama disimpan lowercase (lihat constants.AllRoles).
type PositionModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Nama string    `gorm:"size:100;not null;uniqueIndex;column:nama" json:"nama"`
}

func (PositionModel) TableName() string { return "positions" }
