// Package tts synthesizes narration audio through hosted speech APIs.
// Providers return encoded audio bytes; callers decide where the clip lands
// on disk and measure its real duration afterwards.
package tts

import (
	"context"
	"fmt"
	"math"

	"shortcast/internal/config"
	"shortcast/internal/services"
	"shortcast/internal/timing"
)

// Request describes one synthesis call.
type Request struct {
	Text         string
	LanguageCode string
	VoiceName    string
	SpeakingRate float64
	PitchSemis   float64
	VolumeGainDB float64
	SampleRateHz int
}

// Provider synthesizes speech for a single narration beat.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// New selects the configured provider.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.TTS.Provider {
	case "google":
		return NewGoogle(cfg.TTS), nil
	case "azure":
		return NewAzure(cfg.TTS), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "tts", "select provider",
			fmt.Sprintf("unsupported tts provider %q", cfg.TTS.Provider), nil)
	}
}

// RequestFor builds a synthesis request from a timed segment export and the
// configured voice. Speaking rate comes from the segment's emotion; pitch is
// collapsed from the contour midpoint into a semitone offset.
func RequestFor(export timing.SegmentExport, cfg config.TTS) Request {
	return Request{
		Text:         export.Text,
		LanguageCode: cfg.LanguageCode,
		VoiceName:    cfg.VoiceName,
		SpeakingRate: export.SpeakingRate,
		PitchSemis:   pitchSemitones(export.PitchContour),
		VolumeGainDB: cfg.VolumeGainDB,
		SampleRateHz: cfg.SampleRateHz,
	}
}

// pitchSemitones converts the contour midpoint multiplier to semitones.
// A multiplier of 1.0 maps to 0; 1.06 is about one semitone up.
func pitchSemitones(contour []timing.PitchPoint) float64 {
	if len(contour) == 0 {
		return 0
	}
	mid := contour[len(contour)/2].Multiplier
	if mid <= 0 {
		return 0
	}
	return 12 * math.Log2(mid)
}
