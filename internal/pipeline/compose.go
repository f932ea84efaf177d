package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/stage"
	"shortcast/internal/textutil"
)

// ClipRenderer renders per-segment clips and concatenates them.
type ClipRenderer interface {
	SegmentClip(ctx context.Context, audioPath, text, outPath string, duration float64) error
	Compose(ctx context.Context, clipPaths []string, outPath string) error
	Thumbnail(ctx context.Context, videoPath, outPath string, atSeconds float64) error
	HealthCheck(ctx context.Context) error
}

// ComposeHandler renders each planned video clip and concatenates them into
// the final vertical video.
type ComposeHandler struct {
	cfg      *config.Config
	renderer ClipRenderer
	logger   *slog.Logger
}

// NewComposeHandler builds the composition phase handler.
func NewComposeHandler(cfg *config.Config, renderer ClipRenderer, logger *slog.Logger) *ComposeHandler {
	return &ComposeHandler{
		cfg:      cfg,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "compose"),
	}
}

func (h *ComposeHandler) Prepare(_ context.Context, p *project.Project) error {
	if len(p.VideoClips) == 0 {
		return services.Wrap(services.ErrValidation, "compose", "prepare", "project has no planned video clips", nil)
	}
	for _, clip := range p.VideoClips {
		if p.GetAudioClip(clip.AudioClipID) == nil {
			return services.Wrap(services.ErrNotFound, "compose", "prepare",
				"video clip "+clip.ID+" references a missing narration clip", nil)
		}
	}
	return nil
}

func (h *ComposeHandler) Execute(ctx context.Context, p *project.Project) error {
	projectDir := project.Dir(h.cfg.Paths.OutputDir, p.ID)
	clipsDir := filepath.Join(projectDir, "clips")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return fmt.Errorf("create clips directory: %w", err)
	}

	clipPaths := make([]string, 0, len(p.VideoClips))
	for i, clip := range p.VideoClips {
		audio := p.GetAudioClip(clip.AudioClipID)
		segment := p.Script.GetSegment(clip.SegmentID)
		if segment == nil {
			return services.Wrap(services.ErrNotFound, "compose", "render",
				"video clip "+clip.ID+" references a missing segment", nil)
		}

		outPath := filepath.Join(clipsDir, fmt.Sprintf("%03d.%s", i+1, h.cfg.Video.Format))
		if err := h.renderer.SegmentClip(ctx, audio.FilePath, segment.Text, outPath, clip.Duration); err != nil {
			return err
		}
		clip.FilePath = outPath
		clipPaths = append(clipPaths, outPath)
	}

	finalName := textutil.SanitizeFileName(p.ProductName) + "." + h.cfg.Video.Format
	finalPath := filepath.Join(projectDir, finalName)
	if err := h.renderer.Compose(ctx, clipPaths, finalPath); err != nil {
		return err
	}
	p.FinalVideoPath = finalPath

	thumbPath := filepath.Join(projectDir, "thumbnail.jpg")
	if err := h.renderer.Thumbnail(ctx, finalPath, thumbPath, 0.5); err != nil {
		h.logger.Warn("thumbnail extraction failed", logging.Error(err))
	} else {
		p.Upload.ThumbnailPath = thumbPath
	}

	h.logger.Info("final video composed",
		logging.String(logging.FieldProjectID, p.ID),
		logging.String("final_video", finalPath),
		logging.Int("clips", len(clipPaths)),
	)
	return nil
}

func (h *ComposeHandler) HealthCheck(ctx context.Context) stage.Health {
	if err := h.renderer.HealthCheck(ctx); err != nil {
		return stage.Unhealthy("compose", err.Error())
	}
	return stage.Healthy("compose")
}
