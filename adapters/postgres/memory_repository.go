package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// MemoryRepository is the gorm-backed memory store.
type MemoryRepository struct {
	db *gorm.DB
}

var _ repositories.MemoryRepository = (*MemoryRepository)(nil)

func NewMemoryRepository(db *gorm.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func (r *MemoryRepository) Create(ctx context.Context, memory *entities.Memory) error {
	return r.db.WithContext(ctx).Create(memory).Error
}

func (r *MemoryRepository) GetByID(ctx context.Context, userID, id string) (*entities.Memory, error) {
	var memory entities.Memory
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&memory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrMemoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &memory, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Memory, error) {
	var memories []*entities.Memory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memories).Error
	return memories, err
}

func (r *MemoryRepository) CountByVoiceProfile(ctx context.Context, voiceProfileID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Memory{}).
		Where("voice_profile_id = ?", voiceProfileID).
		Count(&count).Error
	return count, err
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Memory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrMemoryNotFound
	}
	return nil
}
