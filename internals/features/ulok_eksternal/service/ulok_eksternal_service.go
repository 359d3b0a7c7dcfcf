package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fn_ulok_eksternal_*: mutasi assignment & approval dijalankan prosedur
// supaya trigger pembuatan ULOK (saat OK) tetap satu transaksi di DB.

type UlokEksternalService interface {
	Approve(ctx context.Context, userID, id uuid.UUID, status string) (datatypes.JSON, error)
	AssignBranch(ctx context.Context, userID, id, branchID uuid.UUID) (datatypes.JSON, error)
	AssignPenanggungjawab(ctx context.Context, userID, id, pjUserID uuid.UUID) (datatypes.JSON, error)
}

type ulokEksternalService struct {
	db *gorm.DB
}

func NewUlokEksternalService(db *gorm.DB) UlokEksternalService {
	return &ulokEksternalService{db: db}
}

func (s *ulokEksternalService) Approve(ctx context.Context, userID, id uuid.UUID, status string) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_ulok_eksternal_approve(?, ?, ?) AS result`,
		userID, id, status,
	).Scan(&out).Error
	return out, err
}

func (s *ulokEksternalService) AssignBranch(ctx context.Context, userID, id, branchID uuid.UUID) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_ulok_eksternal_assign_branch(?, ?, ?) AS result`,
		userID, id, branchID,
	).Scan(&out).Error
	return out, err
}

func (s *ulokEksternalService) AssignPenanggungjawab(ctx context.Context, userID, id, pjUserID uuid.UUID) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_ulok_eksternal_assign_pj(?, ?, ?) AS result`,
		userID, id, pjUserID,
	).Scan(&out).Error
	return out, err
}
