package entities

import "errors"

// Domain errors surfaced by the orchestration services. Handlers map these
// to HTTP statuses; callers can distinguish input problems from state
// conflicts with errors.Is.
var (
	ErrInvalidVoiceID      = errors.New("invalid voice id")
	ErrTrainingInProgress  = errors.New("voice training is already in progress")
	ErrTrainingAlreadyDone = errors.New("voice training is already completed")
	ErrConsentRequired     = errors.New("voice clone consent has not been given")
	ErrVoiceNotReady       = errors.New("voice profile is not ready for synthesis")
	ErrDurationOutOfRange  = errors.New("source audio duration must be between 10 and 300 seconds")
	ErrProfileNotFound     = errors.New("voice profile not found")
	ErrMemoryNotFound      = errors.New("memory not found")
	ErrMemoryInUse         = errors.New("voice profile has synthesized memories and cannot be deleted")
)
