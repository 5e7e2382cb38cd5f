package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVoiceID(t *testing.T) {
	valid := []string{"GroveVoice1", "Abcdefgh", "a1234567", "Zx123456789012345"}
	for _, id := range valid {
		assert.NoError(t, ValidateVoiceID(id), "id %q", id)
	}

	invalid := []string{
		"",
		"short",
		"1234567890",      // starts with a digit
		"9abcdefg",        // starts with a digit
		"abc-defgh",       // non-alphanumeric
		"with space8",     // non-alphanumeric
		"Abcdefg",         // 7 characters
		"_underscore8ok",  // starts with underscore
		"ümlautvoice8888", // non-ASCII
	}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateVoiceID(id), ErrInvalidVoiceID, "id %q", id)
	}
}

func TestCanStartTraining(t *testing.T) {
	for _, tt := range []struct {
		status TrainingStatus
		want   error
	}{
		{TrainingStatusPending, nil},
		{TrainingStatusFailed, nil},
		{TrainingStatusProcessing, ErrTrainingInProgress},
		{TrainingStatusCompleted, ErrTrainingAlreadyDone},
	} {
		p := &VoiceProfile{TrainingStatus: tt.status}
		err := p.CanStartTraining()
		if tt.want == nil {
			assert.NoError(t, err, "status %s", tt.status)
		} else {
			assert.ErrorIs(t, err, tt.want, "status %s", tt.status)
		}
	}
}

func TestIsReady(t *testing.T) {
	p := &VoiceProfile{TrainingStatus: TrainingStatusCompleted, MinimaxVoiceID: "GroveVoice1"}
	assert.True(t, p.IsReady())

	p.TrainingStatus = TrainingStatusProcessing
	assert.False(t, p.IsReady())

	p.TrainingStatus = TrainingStatusCompleted
	p.MinimaxVoiceID = ""
	assert.False(t, p.IsReady())
}
