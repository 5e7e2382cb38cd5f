package api

// CreateProfileRequest creates a new voice profile. When MinimaxVoiceID is
// empty a conforming identifier is generated.
type CreateProfileRequest struct {
	Name           string `json:"name" validate:"required"`
	Model          string `json:"model,omitempty"`
	MinimaxVoiceID string `json:"minimax_voice_id,omitempty"`
}

// ConsentRequest records voice-clone consent for a profile.
type ConsentRequest struct {
	Consent bool `json:"consent"`
}

// InitiateCloneRequest starts a training run for a profile from a source
// memory.
type InitiateCloneRequest struct {
	VoiceProfileID string `json:"voice_profile_id" validate:"required"`
	MemoryID       string `json:"memory_id" validate:"required"`
}

// CloneResponse reports the training state of a profile.
type CloneResponse struct {
	Status         string `json:"status"`
	VoiceProfileID string `json:"voice_profile_id"`
	MinimaxVoiceID string `json:"minimax_voice_id"`
	Error          string `json:"error,omitempty"`
}

// SynthesizeRequest synthesizes speech with a completed voice profile.
type SynthesizeRequest struct {
	VoiceProfileID    string  `json:"voice_profile_id" validate:"required"`
	Text              string  `json:"text" validate:"required"`
	Emotion           string  `json:"emotion,omitempty"`
	Speed             float64 `json:"speed,omitempty"`
	Volume            float64 `json:"volume,omitempty"`
	Pitch             int     `json:"pitch,omitempty"`
	SaveAsMemory      bool    `json:"save_as_memory,omitempty"`
	MemoryTitle       string  `json:"memory_title,omitempty"`
	MemoryDescription string  `json:"memory_description,omitempty"`
}

// SynthesizeResponse reports a completed synthesis attempt.
type SynthesizeResponse struct {
	SynthesisJobID string  `json:"synthesis_job_id"`
	AudioURL       string  `json:"audio_url"`
	Duration       float64 `json:"duration"`
	MemoryID       *string `json:"memory_id,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
