package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// VoiceProfileRepository is the gorm-backed voice profile store.
type VoiceProfileRepository struct {
	db *gorm.DB
}

var _ repositories.VoiceProfileRepository = (*VoiceProfileRepository)(nil)

func NewVoiceProfileRepository(db *gorm.DB) *VoiceProfileRepository {
	return &VoiceProfileRepository{db: db}
}

func (r *VoiceProfileRepository) Create(ctx context.Context, profile *entities.VoiceProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *VoiceProfileRepository) GetByID(ctx context.Context, userID, id string) (*entities.VoiceProfile, error) {
	var profile entities.VoiceProfile
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *VoiceProfileRepository) ListByUser(ctx context.Context, userID string) ([]*entities.VoiceProfile, error) {
	var profiles []*entities.VoiceProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *VoiceProfileRepository) Update(ctx context.Context, profile *entities.VoiceProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *VoiceProfileRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.VoiceProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrProfileNotFound
	}
	return nil
}
