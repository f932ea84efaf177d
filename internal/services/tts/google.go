package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortcast/internal/config"
	"shortcast/internal/services"
)

const defaultGoogleEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleProvider calls the Google Cloud Text-to-Speech REST API using an API key.
type GoogleProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// GoogleOption customizes the provider.
type GoogleOption func(*GoogleProvider)

// WithGoogleEndpoint overrides the synthesis endpoint (useful for tests).
func WithGoogleEndpoint(endpoint string) GoogleOption {
	return func(p *GoogleProvider) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// WithGoogleHTTPClient overrides the default HTTP client.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(p *GoogleProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// NewGoogle constructs a Google TTS provider from config.
func NewGoogle(cfg config.TTS, opts ...GoogleOption) *GoogleProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	p := &GoogleProvider{
		apiKey:   strings.TrimSpace(cfg.GoogleAPIKey),
		endpoint: defaultGoogleEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GoogleProvider) Name() string { return "google" }

type googleSynthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding   string  `json:"audioEncoding"`
		SpeakingRate    float64 `json:"speakingRate,omitempty"`
		Pitch           float64 `json:"pitch,omitempty"`
		VolumeGainDB    float64 `json:"volumeGainDb,omitempty"`
		SampleRateHertz int     `json:"sampleRateHertz,omitempty"`
	} `json:"audioConfig"`
}

type googleSynthesizeResponse struct {
	AudioContent string `json:"audioContent"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize renders one narration beat to MP3 bytes.
func (p *GoogleProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, services.Wrap(services.ErrValidation, "tts", "synthesize", "empty text", nil)
	}
	if p.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tts", "synthesize",
			"google api key required (set tts.google_api_key or GOOGLE_TTS_API_KEY)", nil)
	}

	var body googleSynthesizeRequest
	body.Input.Text = req.Text
	body.Voice.LanguageCode = req.LanguageCode
	body.Voice.Name = req.VoiceName
	body.AudioConfig.AudioEncoding = "MP3"
	body.AudioConfig.SpeakingRate = req.SpeakingRate
	body.AudioConfig.Pitch = req.PitchSemis
	body.AudioConfig.VolumeGainDB = req.VolumeGainDB
	body.AudioConfig.SampleRateHertz = req.SampleRateHz

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"?key="+p.apiKey, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "tts", "synthesize", "google request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	if resp.StatusCode >= 300 {
		marker := services.ErrExternalTool
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			marker = services.ErrTransient
		}
		return nil, services.Wrap(marker, "tts", "synthesize",
			fmt.Sprintf("google returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}

	var decoded googleSynthesizeResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode synthesis response: %w", err)
	}
	if decoded.Error != nil {
		return nil, services.Wrap(services.ErrExternalTool, "tts", "synthesize", decoded.Error.Message, nil)
	}
	audio, err := base64.StdEncoding.DecodeString(decoded.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "google returned empty audio", nil)
	}
	return audio, nil
}
