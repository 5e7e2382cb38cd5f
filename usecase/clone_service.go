package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// Source audio duration bounds for a training run, in seconds.
const (
	minSourceDuration = 10
	maxSourceDuration = 300
)

// CloneService orchestrates voice clone training: fetch the source
// recording, upload it to the provider, invoke the clone, and keep the
// persisted training state machine honest at every step.
type CloneService struct {
	profiles repositories.VoiceProfileRepository
	samples  repositories.TrainingSampleRepository
	memories repositories.MemoryRepository
	storage  repositories.ObjectStorage
	provider repositories.VoiceProvider
	logger   *zap.Logger
}

// NewCloneService creates a new clone orchestration service.
func NewCloneService(
	profiles repositories.VoiceProfileRepository,
	samples repositories.TrainingSampleRepository,
	memories repositories.MemoryRepository,
	storage repositories.ObjectStorage,
	provider repositories.VoiceProvider,
	logger *zap.Logger,
) *CloneService {
	return &CloneService{
		profiles: profiles,
		samples:  samples,
		memories: memories,
		storage:  storage,
		provider: provider,
		logger:   logger,
	}
}

// InitiateClone runs a training run end to end. The call is synchronous:
// the provider's clone endpoint blocks until the voice is ready, so there
// is no polling phase. The profile is moved to processing before the first
// external call and always lands in a terminal state afterwards, even when
// the triggering error propagates to the caller.
func (s *CloneService) InitiateClone(ctx context.Context, userID, profileID, memoryID string) (_ *entities.VoiceProfile, err error) {
	profile, err := s.profiles.GetByID(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if err = profile.CanStartTraining(); err != nil {
		return nil, err
	}
	if !profile.ConsentGiven {
		return nil, entities.ErrConsentRequired
	}

	memory, err := s.memories.GetByID(ctx, userID, memoryID)
	if err != nil {
		return nil, err
	}
	if memory.DurationSecs < minSourceDuration || memory.DurationSecs > maxSourceDuration {
		return nil, fmt.Errorf("%w: got %.1fs", entities.ErrDurationOutOfRange, memory.DurationSecs)
	}

	// Persist processing before any external call so a crash mid-flight
	// leaves discoverable state instead of a silent pending row.
	now := time.Now()
	profile.TrainingStatus = entities.TrainingStatusProcessing
	profile.TrainingStart = &now
	profile.TrainingEnd = nil
	profile.TrainingError = ""
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to mark training as started: %w", err)
	}

	s.logger.Info("Voice clone training started",
		zap.String("voiceProfileID", profile.ID),
		zap.String("memoryID", memory.ID))

	var sample *entities.TrainingSample
	defer func() {
		if err != nil {
			s.persistFailure(ctx, profile, sample, err)
		}
	}()

	data, err := s.storage.Download(ctx, memory.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source audio: %w", err)
	}

	fileID, err := s.provider.UploadFile(ctx, data, path.Base(memory.StoragePath), memory.MimeType)
	if err != nil {
		return nil, err
	}

	sample = &entities.TrainingSample{
		ID:             uuid.NewString(),
		VoiceProfileID: profile.ID,
		MemoryID:       memory.ID,
		ProviderFileID: fileID,
		UploadStatus:   entities.SampleUploaded,
	}
	if err = s.samples.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to record training sample: %w", err)
	}

	if err = s.provider.CloneVoice(ctx, fileID, profile.MinimaxVoiceID, profile.Model, ""); err != nil {
		return nil, err
	}

	done := time.Now()
	profile.TrainingStatus = entities.TrainingStatusCompleted
	profile.TrainingEnd = &done
	if err = s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to mark training as completed: %w", err)
	}

	s.logger.Info("Voice clone training completed",
		zap.String("voiceProfileID", profile.ID),
		zap.String("minimaxVoiceID", profile.MinimaxVoiceID))
	return profile, nil
}

// CloneStatus returns the persisted training state of a profile.
func (s *CloneService) CloneStatus(ctx context.Context, userID, profileID string) (*entities.VoiceProfile, error) {
	return s.profiles.GetByID(ctx, userID, profileID)
}

// persistFailure writes the terminal failed state. It runs on the unwind
// path, so it must not be skipped by the propagating error and must survive
// a cancelled request context. Partial side effects (an uploaded provider
// file, the sample row) are marked failed, not deleted.
func (s *CloneService) persistFailure(ctx context.Context, profile *entities.VoiceProfile, sample *entities.TrainingSample, cause error) {
	ctx = context.WithoutCancel(ctx)

	profile.TrainingStatus = entities.TrainingStatusFailed
	profile.TrainingError = cause.Error()
	if updateErr := s.profiles.Update(ctx, profile); updateErr != nil {
		s.logger.Error("Failed to persist training failure",
			zap.String("voiceProfileID", profile.ID),
			zap.Error(updateErr))
	}

	if sample != nil {
		sample.UploadStatus = entities.SampleFailed
		if updateErr := s.samples.Update(ctx, sample); updateErr != nil {
			s.logger.Error("Failed to mark training sample as failed",
				zap.String("sampleID", sample.ID),
				zap.Error(updateErr))
		}
	}

	s.logger.Warn("Voice clone training failed",
		zap.String("voiceProfileID", profile.ID),
		zap.Error(cause))
}
