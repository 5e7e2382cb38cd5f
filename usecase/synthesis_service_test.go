package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
	"github.com/allxdamnxday/memory-grove-splash-sub000/internal/audio"
)

// validMP3Hex is a hex payload whose decoded bytes start with an MPEG sync
// word, as the provider returns for real synthesis.
func validMP3Hex() string {
	data := append([]byte{0xFF, 0xFB, 0x90, 0x64}, []byte(strings.Repeat("f", 32000))...)
	return hex.EncodeToString(data)
}

type synthFixture struct {
	svc      *SynthesisService
	profiles *fakeProfileRepo
	jobs     *fakeJobRepo
	memories *fakeMemoryRepo
	storage  *fakeStorage
	provider *fakeProvider
}

func newSynthFixture(t *testing.T, profile *entities.VoiceProfile) *synthFixture {
	t.Helper()
	f := &synthFixture{
		profiles: newFakeProfileRepo(profile),
		jobs:     newFakeJobRepo(),
		memories: newFakeMemoryRepo(),
		storage:  newFakeStorage(),
		provider: &fakeProvider{
			synthResult: &repositories.SynthesisResult{
				AudioHex:   validMP3Hex(),
				TraceID:    "tr-42",
				UsageChars: 200,
			},
		},
	}
	f.svc = NewSynthesisService(f.profiles, f.jobs, f.memories, f.storage, f.provider, zaptest.NewLogger(t))
	return f
}

func TestSynthesizeHappyPath(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))

	result, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID: testProfile,
		Text:           strings.Repeat("Tell me a story. ", 12),
	})
	require.NoError(t, err)

	assert.Equal(t, entities.JobStatusCompleted, result.Job.Status)
	assert.NotEmpty(t, result.AudioURL)
	assert.Greater(t, result.Job.DurationSecs, 0.0)
	assert.Equal(t, "tr-42", result.Job.TraceID)
	assert.NotNil(t, result.Job.CompletedAt)
	assert.Nil(t, result.Memory)

	// The artifact is stored under a user-scoped path.
	assert.Contains(t, result.Job.AudioPath, testUser+"/synthesized/")
	_, stored := f.storage.objects[result.Job.AudioPath]
	assert.True(t, stored)

	persisted := f.jobs.single()
	assert.Equal(t, entities.JobStatusCompleted, persisted.Status)
}

func TestSynthesizeRejectsUnreadyVoice(t *testing.T) {
	for _, status := range []entities.TrainingStatus{
		entities.TrainingStatusPending,
		entities.TrainingStatusProcessing,
		entities.TrainingStatusFailed,
	} {
		f := newSynthFixture(t, freshProfile(status))

		_, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
			VoiceProfileID: testProfile,
			Text:           "hello",
		})
		require.ErrorIs(t, err, entities.ErrVoiceNotReady, "status %s", status)
		assert.Empty(t, f.jobs.jobs, "no job row before the readiness guard passes")
		assert.Zero(t, f.provider.synthCalls)
	}
}

func TestSynthesizeProviderFailurePersistsFailedJob(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))
	f.provider.synthErr = errors.New("synthesis rejected: rate limited")

	_, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID: testProfile,
		Text:           "hello",
	})
	require.Error(t, err)

	job := f.jobs.single()
	require.NotNil(t, job)
	assert.Equal(t, entities.JobStatusFailed, job.Status)
	assert.NotEmpty(t, job.ErrorMessage)
}

func TestSynthesizeRejectsCorruptAudio(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))
	f.provider.synthResult.AudioHex = hex.EncodeToString(make([]byte, 2048))

	_, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID: testProfile,
		Text:           "hello",
	})
	require.ErrorIs(t, err, audio.ErrNotMP3)

	job := f.jobs.single()
	assert.Equal(t, entities.JobStatusFailed, job.Status)
	assert.Empty(t, f.storage.objects, "corrupt audio must not be persisted")
}

func TestSynthesizeRejectsInvalidHex(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))
	f.provider.synthResult.AudioHex = "zz-not-hex"

	_, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID: testProfile,
		Text:           "hello",
	})
	require.Error(t, err)

	job := f.jobs.single()
	assert.Equal(t, entities.JobStatusFailed, job.Status)
}

func TestSynthesizeSaveAsMemory(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))

	result, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID:    testProfile,
		Text:              "a message for the future",
		SaveAsMemory:      true,
		MemoryTitle:       "For my granddaughter",
		MemoryDescription: "recorded with grandma's voice",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Memory)

	memory := result.Memory
	assert.True(t, memory.IsCloned)
	assert.Equal(t, "For my granddaughter", memory.Title)
	require.NotNil(t, memory.SynthesisJobID)
	assert.Equal(t, result.Job.ID, *memory.SynthesisJobID)
	require.NotNil(t, memory.VoiceProfileID)
	assert.Equal(t, testProfile, *memory.VoiceProfileID)
	assert.Equal(t, result.Job.AudioPath, memory.StoragePath)

	_, ok := f.memories.memories[memory.ID]
	assert.True(t, ok)
}

func TestSynthesizeNeverLeavesJobProcessing(t *testing.T) {
	f := newSynthFixture(t, freshProfile(entities.TrainingStatusCompleted))
	f.storage.uploadErr = errors.New("bucket unreachable")

	_, err := f.svc.Synthesize(context.Background(), testUser, SynthesizeRequest{
		VoiceProfileID: testProfile,
		Text:           "hello",
	})
	require.Error(t, err)

	job := f.jobs.single()
	require.NotNil(t, job)
	assert.NotEqual(t, entities.JobStatusProcessing, job.Status)
	assert.Equal(t, entities.JobStatusFailed, job.Status)
}
