package repositories

import (
	"context"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
)

// VoiceProfileRepository defines data access methods for voice profiles.
// All reads are scoped by owner so one user can never touch another's rows.
type VoiceProfileRepository interface {
	Create(ctx context.Context, profile *entities.VoiceProfile) error
	GetByID(ctx context.Context, userID, id string) (*entities.VoiceProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.VoiceProfile, error)
	Update(ctx context.Context, profile *entities.VoiceProfile) error
	Delete(ctx context.Context, userID, id string) error
}

// TrainingSampleRepository defines data access methods for training samples.
type TrainingSampleRepository interface {
	Create(ctx context.Context, sample *entities.TrainingSample) error
	Update(ctx context.Context, sample *entities.TrainingSample) error
	ListByProfile(ctx context.Context, voiceProfileID string) ([]*entities.TrainingSample, error)
}

// SynthesisJobRepository defines data access methods for synthesis jobs.
type SynthesisJobRepository interface {
	Create(ctx context.Context, job *entities.SynthesisJob) error
	GetByID(ctx context.Context, userID, id string) (*entities.SynthesisJob, error)
	Update(ctx context.Context, job *entities.SynthesisJob) error
}

// MemoryRepository defines data access methods for stored memories.
type MemoryRepository interface {
	Create(ctx context.Context, memory *entities.Memory) error
	GetByID(ctx context.Context, userID, id string) (*entities.Memory, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Memory, error)
	CountByVoiceProfile(ctx context.Context, voiceProfileID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}
