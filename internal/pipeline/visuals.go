package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/stage"
)

// VisualsHandler plans the visual track: one video clip per segment, built
// from the narration clip duration and the segment's visual description.
type VisualsHandler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewVisualsHandler builds the visuals phase handler.
func NewVisualsHandler(cfg *config.Config, logger *slog.Logger) *VisualsHandler {
	return &VisualsHandler{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "visuals"),
	}
}

func (h *VisualsHandler) Prepare(_ context.Context, p *project.Project) error {
	if !p.HasScript() {
		return services.Wrap(services.ErrValidation, "visuals", "prepare", "project has no script", nil)
	}
	if len(p.AudioClips) == 0 {
		return services.Wrap(services.ErrValidation, "visuals", "prepare", "project has no narration clips", nil)
	}
	return nil
}

func (h *VisualsHandler) Execute(_ context.Context, p *project.Project) error {
	audioBySegment := make(map[string]*project.AudioClip, len(p.AudioClips))
	for _, clip := range p.AudioClips {
		audioBySegment[clip.SegmentID] = clip
	}

	p.VideoClips = nil
	offset := 0.0
	for _, segment := range p.Script.Segments {
		audio, ok := audioBySegment[segment.ID]
		if !ok {
			return services.Wrap(services.ErrNotFound, "visuals", "plan",
				"segment "+segment.ID+" has no narration clip", nil)
		}

		clip := project.NewVideoClip(segment.ID, audio.ID, audio.Duration)
		clip.VisualElements = planElements(segment.Text, segment.VisualDescription, audio.Duration, offset)
		p.AddVideoClip(clip)
		offset += audio.Duration
	}

	h.logger.Info("visual track planned",
		logging.String(logging.FieldProjectID, p.ID),
		logging.Int("clips", len(p.VideoClips)),
		logging.Float64("total_duration", offset),
	)
	return nil
}

func (h *VisualsHandler) HealthCheck(_ context.Context) stage.Health {
	return stage.Healthy("visuals")
}

// planElements turns a segment into its visual building blocks: the caption
// text overlay, plus a background card when the script describes one.
func planElements(text, description string, duration, offset float64) []project.VisualElement {
	elements := []project.VisualElement{{
		ID:        uuid.NewString(),
		Type:      "caption",
		Content:   text,
		Duration:  duration,
		StartTime: offset,
		EndTime:   offset + duration,
	}}
	if description = strings.TrimSpace(description); description != "" {
		elements = append(elements, project.VisualElement{
			ID:        uuid.NewString(),
			Type:      "background",
			Content:   description,
			Duration:  duration,
			StartTime: offset,
			EndTime:   offset + duration,
		})
	}
	return elements
}
