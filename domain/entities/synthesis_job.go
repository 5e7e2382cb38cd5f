package entities

import "time"

// JobStatus tracks the lifecycle of a synthesis job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// SynthesisJob records one attempt to synthesize speech with a cloned
// voice. Jobs are never retried in place; every attempt is a fresh row, so
// the history of failures stays queryable.
type SynthesisJob struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	UserID         string     `json:"user_id" gorm:"size:36;not null;index"`
	VoiceProfileID string     `json:"voice_profile_id" gorm:"size:36;not null;index"`
	Text           string     `json:"text" gorm:"type:text;not null"`
	Emotion        string     `json:"emotion,omitempty" gorm:"size:32"`
	Status         JobStatus  `json:"status" gorm:"size:32;default:'processing';index"`
	AudioPath      string     `json:"audio_path,omitempty" gorm:"size:1024"`
	DurationSecs   float64    `json:"duration_seconds,omitempty"`
	SizeBytes      int64      `json:"size_bytes,omitempty"`
	TraceID        string     `json:"trace_id,omitempty" gorm:"size:64"`
	ErrorMessage   string     `json:"error_message,omitempty" gorm:"type:text"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
