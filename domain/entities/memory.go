package entities

import "time"

// Memory is a stored audio artifact: either a recording the user made or a
// synthesized clip materialized from a synthesis job.
type Memory struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         string    `json:"user_id" gorm:"size:36;not null;index"`
	Title          string    `json:"title" gorm:"size:256;not null"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	StoragePath    string    `json:"storage_path" gorm:"size:1024;not null"`
	MimeType       string    `json:"mime_type" gorm:"size:64"`
	DurationSecs   float64   `json:"duration_seconds"`
	SizeBytes      int64     `json:"size_bytes"`
	IsCloned       bool      `json:"is_cloned" gorm:"default:false;index"`
	SynthesisJobID *string   `json:"synthesis_job_id,omitempty" gorm:"size:36"`
	VoiceProfileID *string   `json:"voice_profile_id,omitempty" gorm:"size:36;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
