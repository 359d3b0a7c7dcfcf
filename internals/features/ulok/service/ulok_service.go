package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pemanggilan fungsi database (fn_ulok_*). Interface supaya controller bisa
// dites dengan stub tanpa Postgres.

type ListInput struct {
	UserID   uuid.UUID
	BranchID *uuid.UUID // nil = tanpa scoping (regional ke atas)
	Search   string
	Month    *int
	Year     *int
	Limit    int
	AfterKey *string // nilai sort key dari cursor (created_at)
	AfterID  *string
}

type ApproveInput struct {
	UserID uuid.UUID
	UlokID uuid.UUID
	Status string // OK | NOK (sudah dinormalisasi)
}

type UlokService interface {
	List(ctx context.Context, in ListInput) (datatypes.JSON, error)
	Approve(ctx context.Context, in ApproveInput) (datatypes.JSON, error)
}

type ulokService struct {
	db *gorm.DB
}

func NewUlokService(db *gorm.DB) UlokService {
	return &ulokService{db: db}
}

func (s *ulokService) List(ctx context.Context, in ListInput) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_ulok_list(?, ?, ?, ?, ?, ?, ?, ?) AS result`,
		in.UserID, in.BranchID, nullIfEmpty(in.Search), in.Month, in.Year,
		in.Limit, in.AfterKey, in.AfterID,
	).Scan(&out).Error
	return out, err
}

func (s *ulokService) Approve(ctx context.Context, in ApproveInput) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_ulok_approve(?, ?, ?) AS result`,
		in.UserID, in.UlokID, in.Status,
	).Scan(&out).Error
	return out, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
