package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Prosedur per tahap mengikuti konvensi nama fn_<stage>_<aksi>. Key tahap
// datang dari registry tertutup (model.Stages), bukan input user, jadi
// aman diinterpolasi ke nama fungsi.

// HistoryRow: satu transisi status dari fn_<stage>_history.
type HistoryRow struct {
	ID         uuid.UUID      `gorm:"column:id" json:"id"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
	StatusFrom string         `gorm:"column:status_from" json:"status_from"`
	StatusTo   string         `gorm:"column:status_to" json:"status_to"`
	Data       datatypes.JSON `gorm:"column:data" json:"data"`
}

type ApproveInput struct {
	UserID      uuid.UUID
	BranchID    *uuid.UUID
	ProgressID  uuid.UUID
	FinalStatus string // "Selesai" | "Batal", sudah dinormalisasi DTO
}

type UpsertInput struct {
	UserID     uuid.UUID
	BranchID   *uuid.UUID
	ProgressID uuid.UUID
	Payload    datatypes.JSON
}

type StageService interface {
	Approve(ctx context.Context, stageKey string, in ApproveInput) (datatypes.JSON, error)
	Upsert(ctx context.Context, stageKey string, in UpsertInput) (datatypes.JSON, error)
	History(ctx context.Context, stageKey string, progressID uuid.UUID) ([]HistoryRow, error)
}

type stageService struct {
	db *gorm.DB
}

func NewStageService(db *gorm.DB) StageService {
	return &stageService{db: db}
}

func (s *stageService) Approve(ctx context.Context, stageKey string, in ApproveInput) (datatypes.JSON, error) {
	var out datatypes.JSON
	q := fmt.Sprintf(`SELECT fn_%s_approve(?, ?, ?, ?) AS result`, stageKey)
	err := s.db.WithContext(ctx).Raw(q,
		in.UserID, in.BranchID, in.ProgressID, in.FinalStatus,
	).Scan(&out).Error
	return out, err
}

func (s *stageService) Upsert(ctx context.Context, stageKey string, in UpsertInput) (datatypes.JSON, error) {
	var out datatypes.JSON
	q := fmt.Sprintf(`SELECT fn_%s_upsert(?, ?, ?, ?::jsonb) AS result`, stageKey)
	err := s.db.WithContext(ctx).Raw(q,
		in.UserID, in.BranchID, in.ProgressID, in.Payload,
	).Scan(&out).Error
	return out, err
}

func (s *stageService) History(ctx context.Context, stageKey string, progressID uuid.UUID) ([]HistoryRow, error) {
	var rows []HistoryRow
	q := fmt.Sprintf(`SELECT id, created_at, status_from, status_to, data FROM fn_%s_history(?)`, stageKey)
	err := s.db.WithContext(ctx).Raw(q, progressID).Scan(&rows).Error
	return rows, err
}
