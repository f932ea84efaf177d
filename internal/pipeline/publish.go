package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/services/youtube"
	"shortcast/internal/stage"
)

// VideoUploader publishes a project's final video to the hosting platform.
type VideoUploader interface {
	Upload(ctx context.Context, p *project.Project) (*youtube.Result, error)
}

// PublishHandler uploads the composed video and records its hosted identity.
type PublishHandler struct {
	cfg      *config.Config
	uploader VideoUploader
	logger   *slog.Logger
}

// NewPublishHandler builds the upload phase handler.
func NewPublishHandler(cfg *config.Config, uploader VideoUploader, logger *slog.Logger) *PublishHandler {
	return &PublishHandler{
		cfg:      cfg,
		uploader: uploader,
		logger:   logging.NewComponentLogger(logger, "publish"),
	}
}

func (h *PublishHandler) Prepare(_ context.Context, p *project.Project) error {
	if !p.HasFinalVideo() {
		return services.Wrap(services.ErrNotFound, "publish", "prepare",
			"final video missing at "+p.FinalVideoPath, nil)
	}
	existing := p.Upload
	p.Upload = youtube.BuildMetadata(p, h.cfg.Upload)
	if existing.ThumbnailPath != "" {
		p.Upload.ThumbnailPath = existing.ThumbnailPath
	}
	if strings.TrimSpace(p.Upload.Title) == "" {
		return services.Wrap(services.ErrValidation, "publish", "prepare", "upload has no title", nil)
	}
	return nil
}

func (h *PublishHandler) Execute(ctx context.Context, p *project.Project) error {
	result, err := h.uploader.Upload(ctx, p)
	if err != nil {
		return err
	}
	p.Upload.VideoID = result.VideoID
	p.Upload.VideoURL = result.VideoURL
	p.Upload.UploadedAt = result.UploadedAt

	h.logger.Info("video published",
		logging.String(logging.FieldProjectID, p.ID),
		logging.String("video_id", result.VideoID),
		logging.String("video_url", result.VideoURL),
	)
	return nil
}

func (h *PublishHandler) HealthCheck(_ context.Context) stage.Health {
	if h.uploader == nil {
		return stage.Unhealthy("publish", "no uploader configured")
	}
	if !h.cfg.Upload.Enabled {
		return stage.Unhealthy("publish", "upload disabled in config")
	}
	return stage.Healthy("publish")
}
