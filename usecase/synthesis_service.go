package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
	"github.com/allxdamnxday/memory-grove-splash-sub000/internal/audio"
)

// signedURLTTL bounds how long a synthesized clip stays reachable through
// one URL.
const signedURLTTL = time.Hour

// SynthesizeRequest is one synthesis attempt against a ready voice.
type SynthesizeRequest struct {
	VoiceProfileID    string
	Text              string
	Emotion           string
	Speed             float64
	Volume            float64
	Pitch             int
	SaveAsMemory      bool
	MemoryTitle       string
	MemoryDescription string
}

// SynthesizeResult is the outcome of a successful synthesis.
type SynthesizeResult struct {
	Job      *entities.SynthesisJob
	AudioURL string
	Memory   *entities.Memory // set only when the caller asked to save
}

// SynthesisService turns validated text plus a ready voice profile into a
// playable, persisted audio artifact.
type SynthesisService struct {
	profiles repositories.VoiceProfileRepository
	jobs     repositories.SynthesisJobRepository
	memories repositories.MemoryRepository
	storage  repositories.ObjectStorage
	provider repositories.VoiceProvider
	logger   *zap.Logger
}

// NewSynthesisService creates a new synthesis orchestration service.
func NewSynthesisService(
	profiles repositories.VoiceProfileRepository,
	jobs repositories.SynthesisJobRepository,
	memories repositories.MemoryRepository,
	storage repositories.ObjectStorage,
	provider repositories.VoiceProvider,
	logger *zap.Logger,
) *SynthesisService {
	return &SynthesisService{
		profiles: profiles,
		jobs:     jobs,
		memories: memories,
		storage:  storage,
		provider: provider,
		logger:   logger,
	}
}

// Synthesize runs one synthesis attempt. A job row is created in processing
// before the provider call so a crash leaves discoverable state; any
// failure afterwards lands the job in failed with the captured message
// before the error propagates. Jobs are never retried in place.
func (s *SynthesisService) Synthesize(ctx context.Context, userID string, req SynthesizeRequest) (result *SynthesizeResult, err error) {
	profile, err := s.profiles.GetByID(ctx, userID, req.VoiceProfileID)
	if err != nil {
		return nil, err
	}
	if !profile.IsReady() {
		return nil, entities.ErrVoiceNotReady
	}

	job := &entities.SynthesisJob{
		ID:             uuid.NewString(),
		UserID:         userID,
		VoiceProfileID: profile.ID,
		Text:           req.Text,
		Emotion:        req.Emotion,
		Status:         entities.JobStatusProcessing,
	}
	if err = s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create synthesis job: %w", err)
	}

	defer func() {
		if err != nil && job.Status != entities.JobStatusCompleted {
			s.persistJobFailure(ctx, job, err)
		}
	}()

	res, err := s.provider.SynthesizeSpeech(ctx, req.Text, profile.MinimaxVoiceID, repositories.SynthesisOptions{
		Emotion: req.Emotion,
		Speed:   req.Speed,
		Volume:  req.Volume,
		Pitch:   req.Pitch,
	})
	if err != nil {
		return nil, err
	}

	data, err := audio.DecodeHex(res.AudioHex)
	if err != nil {
		return nil, err
	}
	// The provider's hex payload has occasionally carried a non-audio
	// error body; reject anything that doesn't sniff as MP3 instead of
	// persisting a broken memory.
	if err = audio.ValidateMP3(data); err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("%s/synthesized/%s.mp3", userID, job.ID)
	if err = s.storage.Upload(ctx, storagePath, data, "audio/mpeg"); err != nil {
		return nil, fmt.Errorf("failed to store synthesized audio: %w", err)
	}

	url, err := s.storage.SignedURL(ctx, storagePath, signedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign audio URL: %w", err)
	}

	done := time.Now()
	job.Status = entities.JobStatusCompleted
	job.AudioPath = storagePath
	job.SizeBytes = int64(len(data))
	// Estimated from byte size and the nominal bitrate, not decoded.
	job.DurationSecs = audio.EstimateDuration(int64(len(data)), audio.DefaultBitrate)
	job.TraceID = res.TraceID
	job.CompletedAt = &done
	if err = s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to complete synthesis job: %w", err)
	}

	s.logger.Info("Synthesis completed",
		zap.String("jobID", job.ID),
		zap.String("traceID", res.TraceID),
		zap.Int64("sizeBytes", job.SizeBytes))

	result = &SynthesizeResult{Job: job, AudioURL: url}

	if req.SaveAsMemory {
		memory, saveErr := s.saveAsMemory(ctx, userID, profile, job, req)
		if saveErr != nil {
			// The audio artifact exists and the job succeeded; surface
			// the save failure without flipping the job to failed.
			return result, fmt.Errorf("synthesis succeeded but saving the memory failed: %w", saveErr)
		}
		result.Memory = memory
	}

	return result, nil
}

func (s *SynthesisService) saveAsMemory(ctx context.Context, userID string, profile *entities.VoiceProfile, job *entities.SynthesisJob, req SynthesizeRequest) (*entities.Memory, error) {
	title := req.MemoryTitle
	if title == "" {
		title = fmt.Sprintf("Synthesized memory %s", time.Now().Format("2006-01-02"))
	}

	memory := &entities.Memory{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Description:    req.MemoryDescription,
		StoragePath:    job.AudioPath,
		MimeType:       "audio/mpeg",
		DurationSecs:   job.DurationSecs,
		SizeBytes:      job.SizeBytes,
		IsCloned:       true,
		SynthesisJobID: &job.ID,
		VoiceProfileID: &profile.ID,
	}
	if err := s.memories.Create(ctx, memory); err != nil {
		return nil, err
	}

	s.logger.Info("Synthesis saved as memory",
		zap.String("memoryID", memory.ID),
		zap.String("jobID", job.ID))
	return memory, nil
}

// persistJobFailure writes the terminal failed state on the unwind path,
// surviving request cancellation.
func (s *SynthesisService) persistJobFailure(ctx context.Context, job *entities.SynthesisJob, cause error) {
	ctx = context.WithoutCancel(ctx)

	job.Status = entities.JobStatusFailed
	job.ErrorMessage = cause.Error()
	if updateErr := s.jobs.Update(ctx, job); updateErr != nil {
		s.logger.Error("Failed to persist synthesis failure",
			zap.String("jobID", job.ID),
			zap.Error(updateErr))
	}

	s.logger.Warn("Synthesis failed",
		zap.String("jobID", job.ID),
		zap.Error(cause))
}
