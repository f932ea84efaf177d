package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortcast/internal/config"
	"shortcast/internal/services"
)

// AzureProvider calls the Azure Cognitive Services speech REST API.
type AzureProvider struct {
	subscriptionKey string
	endpoint        string
	client          *http.Client
}

// AzureOption customizes the provider.
type AzureOption func(*AzureProvider)

// WithAzureEndpoint overrides the synthesis endpoint (useful for tests).
func WithAzureEndpoint(endpoint string) AzureOption {
	return func(p *AzureProvider) {
		if endpoint != "" {
			p.endpoint = endpoint
		}
	}
}

// WithAzureHTTPClient overrides the default HTTP client.
func WithAzureHTTPClient(client *http.Client) AzureOption {
	return func(p *AzureProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// NewAzure constructs an Azure TTS provider from config.
func NewAzure(cfg config.TTS, opts ...AzureOption) *AzureProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	p := &AzureProvider{
		subscriptionKey: strings.TrimSpace(cfg.AzureSubscriptionKey),
		endpoint:        fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", strings.TrimSpace(cfg.AzureRegion)),
		client:          &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *AzureProvider) Name() string { return "azure" }

// Synthesize renders one narration beat to MP3 bytes via SSML.
func (p *AzureProvider) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, services.Wrap(services.ErrValidation, "tts", "synthesize", "empty text", nil)
	}
	if p.subscriptionKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tts", "synthesize",
			"azure subscription key required (set tts.azure_subscription_key or AZURE_SPEECH_KEY)", nil)
	}

	ssml := buildSSML(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", p.subscriptionKey)
	httpReq.Header.Set("Content-Type", "application/ssml+xml")
	httpReq.Header.Set("X-Microsoft-OutputFormat", "audio-24khz-48kbitrate-mono-mp3")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "tts", "synthesize", "azure request failed", err)
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
			fmt.Sprintf("azure returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}
	if len(payload) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "azure returned empty audio", nil)
	}
	return payload, nil
}

func buildSSML(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<speak version="1.0" xml:lang="%s">`, req.LanguageCode)
	fmt.Fprintf(&sb, `<voice name="%s">`, req.VoiceName)
	ratePercent := (req.SpeakingRate - 1.0) * 100
	fmt.Fprintf(&sb, `<prosody rate="%+.0f%%" pitch="%+.1fst">`, ratePercent, req.PitchSemis)
	sb.WriteString(escapeXML(req.Text))
	sb.WriteString(`</prosody></voice></speak>`)
	return sb.String()
}

func escapeXML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(text)
}
