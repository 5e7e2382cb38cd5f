package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// SynthesisJobRepository is the gorm-backed synthesis job store.
type SynthesisJobRepository struct {
	db *gorm.DB
}

var _ repositories.SynthesisJobRepository = (*SynthesisJobRepository)(nil)

func NewSynthesisJobRepository(db *gorm.DB) *SynthesisJobRepository {
	return &SynthesisJobRepository{db: db}
}

func (r *SynthesisJobRepository) Create(ctx context.Context, job *entities.SynthesisJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *SynthesisJobRepository) GetByID(ctx context.Context, userID, id string) (*entities.SynthesisJob, error) {
	var job entities.SynthesisJob
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *SynthesisJobRepository) Update(ctx context.Context, job *entities.SynthesisJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}
