package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"shortcast/internal/brief"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/project"
	"shortcast/internal/script"
	"shortcast/internal/services"
	"shortcast/internal/stage"
	"shortcast/internal/timing"
)

// Metadata keys that keep enough of the campaign brief inside the project
// document for a draft restart to regenerate the script.
const (
	metaStyle         = "brief_style"
	metaAudience      = "brief_audience"
	metaDescription   = "brief_description"
	metaSellingPoints = "brief_selling_points"
	metaAutoUpload    = "brief_auto_upload"
	metaLastError     = "last_error"

	sellingPointSeparator = "\n"
)

// ScriptGenerator drafts a provisional script from a campaign brief.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, b *brief.Brief, language string) (*script.Script, error)
	HealthCheck(ctx context.Context) error
}

// DraftingHandler turns the stored brief into a timed script.
type DraftingHandler struct {
	cfg       *config.Config
	generator ScriptGenerator
	engine    *timing.Engine
	logger    *slog.Logger
}

// NewDraftingHandler builds the drafting phase handler.
func NewDraftingHandler(cfg *config.Config, generator ScriptGenerator, logger *slog.Logger) (*DraftingHandler, error) {
	engine, err := EngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &DraftingHandler{
		cfg:       cfg,
		generator: generator,
		engine:    engine,
		logger:    logging.NewComponentLogger(logger, "drafting"),
	}, nil
}

// EngineFromConfig builds the timing engine from the script config section.
func EngineFromConfig(cfg *config.Config) (*timing.Engine, error) {
	return timing.New(timing.Options{
		ReadingSpeed:       cfg.Script.ReadingSpeed,
		MaxSegmentDuration: cfg.Script.MaxSegmentDuration,
		MaxTotalDuration:   cfg.Script.MaxTotalDuration,
		AdjustTolerance:    cfg.Script.AdjustToleranceSeconds,
		Language:           cfg.Script.Language,
	})
}

// StashBrief copies the brief fields a draft restart needs into the project
// metadata so the project document stays self-contained.
func StashBrief(p *project.Project, b *brief.Brief) {
	if p.Metadata == nil {
		p.Metadata = make(map[string]string)
	}
	p.Metadata[metaStyle] = b.Style
	p.Metadata[metaAudience] = b.Audience
	p.Metadata[metaDescription] = b.Description
	p.Metadata[metaSellingPoints] = strings.Join(b.SellingPts, sellingPointSeparator)
	if b.AutoUpload {
		p.Metadata[metaAutoUpload] = "true"
	}
}

// briefFromProject rebuilds the campaign brief from the project document.
func briefFromProject(p *project.Project) *brief.Brief {
	b := &brief.Brief{
		Name:       p.Name,
		Product:    p.ProductName,
		LandingURL: p.LandingURL,
	}
	if p.Metadata == nil {
		return b
	}
	b.Style = p.Metadata[metaStyle]
	b.Audience = p.Metadata[metaAudience]
	b.Description = p.Metadata[metaDescription]
	if points := p.Metadata[metaSellingPoints]; points != "" {
		b.SellingPts = strings.Split(points, sellingPointSeparator)
	}
	b.AutoUpload = p.Metadata[metaAutoUpload] == "true"
	return b
}

// autoUpload reports whether the originating brief asked for upload.
func autoUpload(p *project.Project) bool {
	return p.Metadata != nil && p.Metadata[metaAutoUpload] == "true"
}

func (h *DraftingHandler) Prepare(_ context.Context, p *project.Project) error {
	if strings.TrimSpace(p.ProductName) == "" {
		return services.Wrap(services.ErrValidation, "drafting", "prepare", "project has no product name", nil)
	}
	return nil
}

func (h *DraftingHandler) Execute(ctx context.Context, p *project.Project) error {
	b := briefFromProject(p)
	drafted, err := h.generator.GenerateScript(ctx, b, h.cfg.Script.Language)
	if err != nil {
		return err
	}

	timed, err := h.engine.Process(drafted)
	if err != nil {
		return err
	}

	p.Script = timed
	summary := timing.Summarize(timed)
	h.logger.Info("script drafted and timed",
		logging.String(logging.FieldProjectID, p.ID),
		logging.Int("segments", summary.SegmentCount),
		logging.Float64("total_duration", summary.TotalDuration),
	)
	return nil
}

func (h *DraftingHandler) HealthCheck(ctx context.Context) stage.Health {
	if err := h.generator.HealthCheck(ctx); err != nil {
		return stage.Unhealthy("drafting", err.Error())
	}
	return stage.Healthy("drafting")
}
