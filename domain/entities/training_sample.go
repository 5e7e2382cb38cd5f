package entities

import "time"

// Upload status of a training sample on the provider side.
const (
	SampleUploaded = "uploaded"
	SampleFailed   = "failed"
)

// TrainingSample links a voice profile to the source memory that was used
// for a training run and the provider-side file id the audio was uploaded
// as. Samples are immutable history: a retry creates a new row, failed rows
// are kept.
type TrainingSample struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	VoiceProfileID string    `json:"voice_profile_id" gorm:"size:36;not null;index"`
	MemoryID       string    `json:"memory_id" gorm:"size:36;not null"`
	ProviderFileID string    `json:"provider_file_id" gorm:"size:64"`
	UploadStatus   string    `json:"upload_status" gorm:"size:32"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
