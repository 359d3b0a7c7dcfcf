package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fn_kplt_*: create memvalidasi "ULOK harus OK" dan mewarisi branch dari
// ULOK induk; approve memutuskan kplt_approval; detail join ULOK + progress.

type CreateInput struct {
	UserID        uuid.UUID
	UlokID        uuid.UUID
	NamaPemilik   string
	NilaiKontrak  int64
	MasaSewaTahun int
	TglMulaiSewa  *time.Time
	NomorKontrak  *string
}

type KpltService interface {
	Create(ctx context.Context, in CreateInput) (datatypes.JSON, error)
	Detail(ctx context.Context, userID, kpltID uuid.UUID) (datatypes.JSON, error)
	Approve(ctx context.Context, userID, kpltID uuid.UUID, status string, final bool) (datatypes.JSON, error)
}

type kpltService struct {
	db *gorm.DB
}

func NewKpltService(db *gorm.DB) KpltService {
	return &kpltService{db: db}
}

func (s *kpltService) Create(ctx context.Context, in CreateInput) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_kplt_create(?, ?, ?, ?, ?, ?, ?) AS result`,
		in.UserID, in.UlokID, in.NamaPemilik, in.NilaiKontrak,
		in.MasaSewaTahun, in.TglMulaiSewa, in.NomorKontrak,
	).Scan(&out).Error
	return out, err
}

func (s *kpltService) Detail(ctx context.Context, userID, kpltID uuid.UUID) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_kplt_detail(?, ?) AS result`,
		userID, kpltID,
	).Scan(&out).Error
	return out, err
}

func (s *kpltService) Approve(ctx context.Context, userID, kpltID uuid.UUID, status string, final bool) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_kplt_approve(?, ?, ?, ?) AS result`,
		userID, kpltID, status, final,
	).Scan(&out).Error
	return out, err
}
