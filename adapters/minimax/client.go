// Package minimax is the single point of contact with the MiniMax voice
// API: reference audio upload, voice cloning, and text-to-speech. It owns
// credential handling, request shaping, throttling, and transient-failure
// retry so the orchestration services never touch the wire directly.
package minimax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://api.minimax.io"
	defaultModel      = entities.VoiceModelStandard

	// Upload ceiling enforced before any network call.
	maxUploadBytes = 20 << 20

	// Synthesis parameter bounds, rejected locally when out of range.
	maxTextLength = 5000
	minSpeed      = 0.5
	maxSpeed      = 2.0
	minVolume     = 0.1
	maxVolume     = 5.0
	minPitch      = -12
	maxPitch      = 12

	defaultSpeed  = 1.0
	defaultVolume = 1.0

	// Output encoding requested for every synthesis call.
	outputSampleRate = 32000
	outputBitrate    = 128000
	outputFormat     = "mp3"
	outputChannels   = 1

	// Minimum spacing between outbound provider calls.
	minCallInterval = 100 * time.Millisecond

	// Retry budget for transient failures: maxAttempts total calls with
	// the delay doubling between them. Client errors are never retried.
	maxAttempts        = 3
	initialRetryDelay  = 500 * time.Millisecond
	requestTimeout     = 60 * time.Second
	cloneAccuracy      = 0.7
	uploadPurposeField = "voice_clone"
)

// Config holds configuration for the MiniMax client.
// Required fields:
// - APIKey: the MiniMax API key
// - GroupID: the MiniMax group id, sent as a query parameter on every call
// Optional fields with defaults:
// - APIBaseURL: base URL for the API (default: "https://api.minimax.io")
// - Model: model variant used for cloning and synthesis
type Config struct {
	APIKey     string
	GroupID    string
	APIBaseURL string
	Model      string
}

// NewConfigFromEnv creates a Config from environment variables. Missing
// required variables are not an error here: validation is deferred to the
// first provider call so the rest of the service can run unconfigured.
func NewConfigFromEnv() Config {
	return Config{
		APIKey:     os.Getenv("MINIMAX_API_KEY"),
		GroupID:    os.Getenv("MINIMAX_GROUP_ID"),
		APIBaseURL: os.Getenv("MINIMAX_API_BASE_URL"),
		Model:      os.Getenv("MINIMAX_MODEL"),
	}
}

// Client implements repositories.VoiceProvider against the MiniMax API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger

	retryInitial time.Duration

	configOnce sync.Once
	configErr  error
}

// Ensure Client implements the VoiceProvider interface.
var _ repositories.VoiceProvider = (*Client)(nil)

// NewClient creates a new MiniMax client. The configuration is accepted
// as-is; required values are checked lazily on first use.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	return &Client{
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: requestTimeout},
		limiter:      rate.NewLimiter(rate.Every(minCallInterval), 1),
		logger:       logger,
		retryInitial: initialRetryDelay,
	}
}

// checkConfig validates required configuration exactly once, at call time.
// The error names every missing variable so operators know what to set.
func (c *Client) checkConfig() error {
	c.configOnce.Do(func() {
		var missing []string
		if c.cfg.APIKey == "" {
			missing = append(missing, "MINIMAX_API_KEY")
		}
		if c.cfg.GroupID == "" {
			missing = append(missing, "MINIMAX_GROUP_ID")
		}
		if len(missing) > 0 {
			c.configErr = &Error{
				Kind:    KindConfig,
				Message: "missing required configuration: " + strings.Join(missing, ", "),
			}
		}
	})
	return c.configErr
}

// UploadFile uploads reference audio and returns the provider file id.
func (c *Client) UploadFile(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", &Error{Kind: KindValidation, Message: "audio data is empty"}
	}
	if len(data) > maxUploadBytes {
		return "", &Error{Kind: KindValidation,
			Message: fmt.Sprintf("audio file is %d bytes, maximum is %d", len(data), maxUploadBytes)}
	}
	if err := c.checkConfig(); err != nil {
		return "", err
	}

	c.logger.Info("Uploading reference audio to MiniMax",
		zap.String("filename", filename),
		zap.Int("sizeBytes", len(data)))

	url := fmt.Sprintf("%s/v1/files/upload?GroupId=%s", c.cfg.APIBaseURL, c.cfg.GroupID)
	body, err := c.do(ctx, url, func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if err := w.WriteField("purpose", uploadPurposeField); err != nil {
			return nil, "", err
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	})
	if err != nil {
		return "", err
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &Error{Kind: KindTransport, Message: fmt.Sprintf("malformed upload response: %v", err)}
	}
	if resp.BaseResp.StatusCode != 0 {
		return "", &Error{Kind: KindProvider,
			StatusCode: resp.BaseResp.StatusCode,
			Message:    providerMessage(resp.BaseResp, "file upload rejected")}
	}
	if resp.File.FileID.String() == "" {
		return "", &Error{Kind: KindProvider, Message: "upload response contained no file id"}
	}

	c.logger.Info("Reference audio uploaded", zap.String("fileID", resp.File.FileID.String()))
	return resp.File.FileID.String(), nil
}

// CloneVoice trains a cloned voice from a previously uploaded file. The
// provider call is synchronous: when it returns without error the voice is
// ready for synthesis.
func (c *Client) CloneVoice(ctx context.Context, fileID, voiceID, model, previewText string) error {
	if err := entities.ValidateVoiceID(voiceID); err != nil {
		return &Error{Kind: KindValidation, Message: err.Error()}
	}
	if fileID == "" {
		return &Error{Kind: KindValidation, Message: "file id is required"}
	}
	if err := c.checkConfig(); err != nil {
		return err
	}
	if model == "" {
		model = c.cfg.Model
	}

	c.logger.Info("Requesting voice clone",
		zap.String("voiceID", voiceID),
		zap.String("model", model))

	payload := cloneRequest{
		FileID:                  json.Number(fileID),
		VoiceID:                 voiceID,
		Model:                   model,
		NeedNoiseReduction:      false,
		NeedVolumeNormalization: false,
		Accuracy:                cloneAccuracy,
		Text:                    previewText,
	}

	url := fmt.Sprintf("%s/v1/voice_clone?GroupId=%s", c.cfg.APIBaseURL, c.cfg.GroupID)
	body, err := c.doJSON(ctx, url, payload)
	if err != nil {
		return err
	}

	var resp cloneResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("malformed clone response: %v", err)}
	}
	if resp.BaseResp.StatusCode != 0 {
		return &Error{Kind: KindProvider,
			StatusCode: resp.BaseResp.StatusCode,
			Message:    providerMessage(resp.BaseResp, "voice clone rejected")}
	}

	c.logger.Info("Voice clone completed", zap.String("voiceID", voiceID))
	return nil
}

// SynthesizeSpeech synthesizes text with a cloned voice and returns the
// hex-encoded audio exactly as the provider sent it.
func (c *Client) SynthesizeSpeech(ctx context.Context, text, voiceID string, opts repositories.SynthesisOptions) (*repositories.SynthesisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Kind: KindValidation, Message: "text is empty"}
	}
	if len(text) > maxTextLength {
		return nil, &Error{Kind: KindValidation,
			Message: fmt.Sprintf("text is %d characters, maximum is %d", len(text), maxTextLength)}
	}
	speed := opts.Speed
	if speed == 0 {
		speed = defaultSpeed
	}
	if speed < minSpeed || speed > maxSpeed {
		return nil, &Error{Kind: KindValidation,
			Message: fmt.Sprintf("speed %.2f is out of range [%.1f, %.1f]", speed, minSpeed, maxSpeed)}
	}
	volume := opts.Volume
	if volume == 0 {
		volume = defaultVolume
	}
	if volume < minVolume || volume > maxVolume {
		return nil, &Error{Kind: KindValidation,
			Message: fmt.Sprintf("volume %.2f is out of range [%.1f, %.1f]", volume, minVolume, maxVolume)}
	}
	if opts.Pitch < minPitch || opts.Pitch > maxPitch {
		return nil, &Error{Kind: KindValidation,
			Message: fmt.Sprintf("pitch %d is out of range [%d, %d]", opts.Pitch, minPitch, maxPitch)}
	}
	if err := entities.ValidateVoiceID(voiceID); err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error()}
	}
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	c.logger.Info("Requesting speech synthesis",
		zap.String("voiceID", voiceID),
		zap.Int("textLength", len(text)))

	payload := t2aRequest{
		Model:  c.cfg.Model,
		Text:   text,
		Stream: false,
		VoiceSetting: voiceSetting{
			VoiceID: voiceID,
			Speed:   speed,
			Vol:     volume,
			Pitch:   opts.Pitch,
			Emotion: opts.Emotion,
		},
		AudioSetting: audioSetting{
			SampleRate: outputSampleRate,
			Bitrate:    outputBitrate,
			Format:     outputFormat,
			Channel:    outputChannels,
		},
	}

	url := fmt.Sprintf("%s/v1/t2a_v2?GroupId=%s", c.cfg.APIBaseURL, c.cfg.GroupID)
	body, err := c.doJSON(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var resp t2aResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("malformed synthesis response: %v", err)}
	}
	if resp.BaseResp.StatusCode != 0 {
		return nil, &Error{Kind: KindProvider,
			StatusCode: resp.BaseResp.StatusCode,
			Message:    providerMessage(resp.BaseResp, "synthesis rejected")}
	}
	if resp.Data.Audio == "" {
		return nil, &Error{Kind: KindProvider, Message: "synthesis response contained no audio"}
	}

	c.logger.Info("Speech synthesis completed",
		zap.String("traceID", resp.TraceID),
		zap.Int("usageCharacters", resp.ExtraInfo.UsageCharacters))

	return &repositories.SynthesisResult{
		AudioHex:   resp.Data.Audio,
		TraceID:    resp.TraceID,
		UsageChars: resp.ExtraInfo.UsageCharacters,
	}, nil
}

// doJSON posts a JSON payload through the throttle/retry pipeline.
func (c *Client) doJSON(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	return c.do(ctx, url, func() (io.Reader, string, error) {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	})
}

// do executes one POST through the minimum-interval throttle and the
// bounded exponential backoff. The body factory runs once per attempt so
// retries never reuse a consumed reader. 5xx and network failures are
// retried with doubling delay; any 4xx is permanent.
func (c *Client) do(ctx context.Context, url string, makeBody func() (io.Reader, string, error)) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInitial
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	var respBody []byte
	attempt := 0

	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		body, contentType, err := makeBody()
		if err != nil {
			return backoff.Permanent(&Error{Kind: KindValidation, Message: err.Error()})
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
		if err != nil {
			return backoff.Permanent(&Error{Kind: KindValidation, Message: err.Error()})
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", contentType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("MiniMax request failed, may retry",
				zap.Int("attempt", attempt), zap.Error(err))
			return &Error{Kind: KindTransport, Message: err.Error()}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("reading response: %v", err)}
		}

		switch {
		case resp.StatusCode >= 500:
			c.logger.Warn("MiniMax server error, may retry",
				zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
			return &Error{Kind: KindTransport, HTTPStatus: resp.StatusCode,
				Message: snippet(data)}
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(&Error{Kind: KindAuth, HTTPStatus: resp.StatusCode,
				Message: snippet(data)})
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return backoff.Permanent(&Error{Kind: KindTransport, HTTPStatus: resp.StatusCode,
				Message: snippet(data)})
		}

		respBody = data
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx))
	if err != nil {
		return nil, err
	}
	return respBody, nil
}

// providerMessage prefers the provider's own status message.
func providerMessage(br baseResp, fallback string) string {
	if br.StatusMsg != "" {
		return br.StatusMsg
	}
	return fallback
}

// snippet bounds an error body for inclusion in an error message. The cut
// backs up to a rune boundary so a multi-byte character is never split.
func snippet(data []byte) string {
	const max = 256
	s := strings.TrimSpace(string(data))
	if len(s) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	if s == "" {
		return "no response body"
	}
	return s
}
