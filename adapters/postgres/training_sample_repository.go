package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// TrainingSampleRepository is the gorm-backed training sample store.
type TrainingSampleRepository struct {
	db *gorm.DB
}

var _ repositories.TrainingSampleRepository = (*TrainingSampleRepository)(nil)

func NewTrainingSampleRepository(db *gorm.DB) *TrainingSampleRepository {
	return &TrainingSampleRepository{db: db}
}

func (r *TrainingSampleRepository) Create(ctx context.Context, sample *entities.TrainingSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *TrainingSampleRepository) Update(ctx context.Context, sample *entities.TrainingSample) error {
	return r.db.WithContext(ctx).Save(sample).Error
}

func (r *TrainingSampleRepository) ListByProfile(ctx context.Context, voiceProfileID string) ([]*entities.TrainingSample, error) {
	var samples []*entities.TrainingSample
	err := r.db.WithContext(ctx).
		Where("voice_profile_id = ?", voiceProfileID).
		Order("created_at DESC").
		Find(&samples).Error
	return samples, err
}
