package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/services/tts"
	"shortcast/internal/stage"
	"shortcast/internal/timing"
)

// AudioProber measures the real duration of a rendered audio file.
type AudioProber interface {
	AudioDuration(ctx context.Context, path string) (float64, error)
}

// SynthesisHandler narrates each script segment through the configured
// speech provider. Segments synthesize in parallel up to the configured
// concurrency; results land in segment order regardless of completion order.
type SynthesisHandler struct {
	cfg      *config.Config
	provider tts.Provider
	prober   AudioProber
	engine   *timing.Engine
	logger   *slog.Logger
}

// NewSynthesisHandler builds the synthesis phase handler.
func NewSynthesisHandler(cfg *config.Config, provider tts.Provider, prober AudioProber, logger *slog.Logger) (*SynthesisHandler, error) {
	engine, err := EngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &SynthesisHandler{
		cfg:      cfg,
		provider: provider,
		prober:   prober,
		engine:   engine,
		logger:   logging.NewComponentLogger(logger, "synthesis"),
	}, nil
}

func (h *SynthesisHandler) Prepare(_ context.Context, p *project.Project) error {
	if !p.HasScript() || len(p.Script.Segments) == 0 {
		return services.Wrap(services.ErrValidation, "synthesis", "prepare", "project has no timed script", nil)
	}
	return nil
}

func (h *SynthesisHandler) Execute(ctx context.Context, p *project.Project) error {
	audioDir := filepath.Join(project.Dir(h.cfg.Paths.OutputDir, p.ID), "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	exports := h.engine.ExportForTTS(p.Script)
	clips := make([]*project.AudioClip, len(exports))

	group, groupCtx := errgroup.WithContext(ctx)
	concurrency := h.cfg.TTS.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	group.SetLimit(concurrency)

	for i, export := range exports {
		group.Go(func() error {
			request := tts.RequestFor(export, h.cfg.TTS)
			audio, err := h.provider.Synthesize(groupCtx, request)
			if err != nil {
				return err
			}

			path := filepath.Join(audioDir, fmt.Sprintf("%03d-%s.mp3", i+1, export.ID))
			if err := os.WriteFile(path, audio, 0o644); err != nil {
				return fmt.Errorf("write audio clip %s: %w", path, err)
			}

			duration, err := h.prober.AudioDuration(groupCtx, path)
			if err != nil {
				return err
			}

			clip := project.NewAudioClip(export.ID, export.Text, path, duration)
			clip.Settings = project.AudioSettings{
				Provider:      h.provider.Name(),
				LanguageCode:  request.LanguageCode,
				VoiceName:     request.VoiceName,
				SpeakingRate:  request.SpeakingRate,
				Pitch:         request.PitchSemis,
				VolumeGainDB:  request.VolumeGainDB,
				AudioEncoding: "mp3",
				SampleRateHz:  request.SampleRateHz,
			}
			clips[i] = clip

			h.logger.Debug("segment narrated",
				logging.String(logging.FieldProjectID, p.ID),
				logging.String(logging.FieldSegmentID, export.ID),
				logging.Float64("duration", duration),
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	p.AudioClips = nil
	for _, clip := range clips {
		p.AddAudioClip(clip)
	}
	h.logger.Info("narration synthesized",
		logging.String(logging.FieldProjectID, p.ID),
		logging.Int("clips", len(clips)),
	)
	return nil
}

func (h *SynthesisHandler) HealthCheck(_ context.Context) stage.Health {
	if h.provider == nil {
		return stage.Unhealthy("synthesis", "no speech provider configured")
	}
	return stage.Healthy("synthesis")
}
