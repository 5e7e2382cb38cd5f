package repositories

import "context"

// SynthesisOptions tunes a single synthesis call. Zero values fall back to
// the provider client's defaults.
type SynthesisOptions struct {
	Emotion string
	Speed   float64
	Volume  float64
	Pitch   int
}

// SynthesisResult is the raw outcome of a synthesis call. The audio comes
// back hex-encoded exactly as the provider sent it; decoding and format
// validation are the orchestrator's job.
type SynthesisResult struct {
	AudioHex   string
	TraceID    string
	UsageChars int
}

// VoiceProvider abstracts the external voice-cloning API: reference audio
// upload, voice cloning, and text-to-speech with a cloned voice.
type VoiceProvider interface {
	UploadFile(ctx context.Context, data []byte, filename, mimeType string) (fileID string, err error)
	CloneVoice(ctx context.Context, fileID, voiceID, model, previewText string) error
	SynthesizeSpeech(ctx context.Context, text, voiceID string, opts SynthesisOptions) (*SynthesisResult, error)
}
