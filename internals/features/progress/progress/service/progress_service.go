package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressService membungkus fn_progress_* — timeline dirangkai di DB
// (satu round-trip untuk enam tahap), bukan di Go.
type ProgressService interface {
	Timeline(ctx context.Context, userID, progressID uuid.UUID) (datatypes.JSON, error)
}

type progressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) ProgressService {
	return &progressService{db: db}
}

func (s *progressService) Timeline(ctx context.Context, userID, progressID uuid.UUID) (datatypes.JSON, error) {
	var out datatypes.JSON
	err := s.db.WithContext(ctx).Raw(
		`SELECT fn_progress_timeline(?, ?) AS result`,
		userID, progressID,
	).Scan(&out).Error
	return out, err
}
