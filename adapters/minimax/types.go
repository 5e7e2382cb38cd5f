package minimax

import "encoding/json"

// baseResp is the provider's embedded status envelope. A status_code other
// than zero is a logical failure even when the HTTP status is 200.
type baseResp struct {
	StatusCode int64  `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// uploadResponse is the response of POST /v1/files/upload.
type uploadResponse struct {
	File struct {
		FileID json.Number `json:"file_id"`
	} `json:"file"`
	BaseResp baseResp `json:"base_resp"`
}

// cloneRequest is the body of POST /v1/voice_clone.
type cloneRequest struct {
	FileID                  json.Number `json:"file_id"`
	VoiceID                 string      `json:"voice_id"`
	Model                   string      `json:"model"`
	NeedNoiseReduction      bool        `json:"need_noise_reduction"`
	NeedVolumeNormalization bool        `json:"need_volume_normalization"`
	Accuracy                float64     `json:"accuracy"`
	Text                    string      `json:"text,omitempty"`
}

// cloneResponse is the response of POST /v1/voice_clone.
type cloneResponse struct {
	DemoAudio string   `json:"demo_audio,omitempty"`
	BaseResp  baseResp `json:"base_resp"`
}

// voiceSetting selects the cloned voice and prosody for synthesis.
type voiceSetting struct {
	VoiceID string  `json:"voice_id"`
	Speed   float64 `json:"speed"`
	Vol     float64 `json:"vol"`
	Pitch   int     `json:"pitch"`
	Emotion string  `json:"emotion,omitempty"`
}

// audioSetting fixes the synthesized output encoding.
type audioSetting struct {
	SampleRate int    `json:"sample_rate"`
	Bitrate    int    `json:"bitrate"`
	Format     string `json:"format"`
	Channel    int    `json:"channel"`
}

// t2aRequest is the body of POST /v1/t2a_v2.
type t2aRequest struct {
	Model        string       `json:"model"`
	Text         string       `json:"text"`
	Stream       bool         `json:"stream"`
	VoiceSetting voiceSetting `json:"voice_setting"`
	AudioSetting audioSetting `json:"audio_setting"`
}

// t2aResponse is the response of POST /v1/t2a_v2. Audio is a hex string.
type t2aResponse struct {
	Data struct {
		Audio string `json:"audio"`
	} `json:"data"`
	TraceID   string `json:"trace_id"`
	ExtraInfo struct {
		UsageCharacters int `json:"usage_characters"`
	} `json:"extra_info"`
	BaseResp baseResp `json:"base_resp"`
}
