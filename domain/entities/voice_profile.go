package entities

import (
	"fmt"
	"regexp"
	"time"
)

// TrainingStatus tracks the lifecycle of a voice clone training run.
type TrainingStatus string

const (
	TrainingStatusPending    TrainingStatus = "pending"
	TrainingStatusProcessing TrainingStatus = "processing"
	TrainingStatusCompleted  TrainingStatus = "completed"
	TrainingStatusFailed     TrainingStatus = "failed"
)

// Model variants offered by the provider, two quality tiers.
const (
	VoiceModelStandard = "speech-02-hd"
	VoiceModelTurbo    = "speech-02-turbo"
)

// Provider constraint: at least 8 alphanumeric characters, starting with a letter.
var voiceIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{7,}$`)

// VoiceProfile represents a user's cloned voice and its training state.
type VoiceProfile struct {
	ID             string         `json:"id" gorm:"primaryKey;size:36"`
	UserID         string         `json:"user_id" gorm:"size:36;not null;index"`
	Name           string         `json:"name" gorm:"size:128;not null"`
	MinimaxVoiceID string         `json:"minimax_voice_id" gorm:"size:64"`
	Model          string         `json:"model" gorm:"size:64"`
	TrainingStatus TrainingStatus `json:"training_status" gorm:"size:32;default:'pending';index"`
	TrainingError  string         `json:"training_error,omitempty" gorm:"type:text"`
	TrainingStart  *time.Time     `json:"training_started_at,omitempty"`
	TrainingEnd    *time.Time     `json:"training_completed_at,omitempty"`
	ConsentGiven   bool           `json:"consent_given" gorm:"default:false"`
	ConsentAt      *time.Time     `json:"consent_at,omitempty"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ValidateVoiceID checks a provider voice identifier against the provider's
// format constraint. It is used both when creating profiles and before any
// clone call, so malformed ids fail fast without a network round trip.
func ValidateVoiceID(voiceID string) error {
	if !voiceIDPattern.MatchString(voiceID) {
		return fmt.Errorf("%w: %q must be at least 8 alphanumeric characters starting with a letter",
			ErrInvalidVoiceID, voiceID)
	}
	return nil
}

// Validate checks the profile's own invariants.
func (p *VoiceProfile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return ValidateVoiceID(p.MinimaxVoiceID)
}

// CanStartTraining reports whether a new training run may begin. A profile
// already processing or completed must not be trained again; failed and
// pending profiles may start (or retry) a run.
func (p *VoiceProfile) CanStartTraining() error {
	switch p.TrainingStatus {
	case TrainingStatusProcessing:
		return ErrTrainingInProgress
	case TrainingStatusCompleted:
		return ErrTrainingAlreadyDone
	default:
		return nil
	}
}

// IsReady reports whether the profile can be used for synthesis.
func (p *VoiceProfile) IsReady() bool {
	return p.TrainingStatus == TrainingStatusCompleted && p.MinimaxVoiceID != ""
}
