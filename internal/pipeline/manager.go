package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shortcast/internal/catalog"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/notifications"
	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/services/tts"
	"shortcast/internal/stage"
)

// phase binds a handler to the status it produces.
type phase struct {
	name    string
	done    project.Status
	handler stage.Handler
}

// Handlers collects the phase handlers the Manager sequences. Tests inject
// fakes here; production wiring uses Build.
type Handlers struct {
	Drafting  stage.Handler
	Synthesis stage.Handler
	Visuals   stage.Handler
	Compose   stage.Handler
	Publish   stage.Handler
}

// Manager runs the generation phases over a project in lifecycle order.
// The project document is saved and mirrored into the catalog after every
// status change, so a crash between phases loses at most the phase in flight.
type Manager struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *catalog.Store
	notifier notifications.Service
	phases   []phase
}

// NewManager assembles a Manager from prebuilt handlers. The catalog may be
// nil; persistence then happens through the project document alone.
func NewManager(cfg *config.Config, logger *slog.Logger, store *catalog.Store, notifier notifications.Service, handlers Handlers) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		catalog:  store,
		notifier: notifier,
		phases: []phase{
			{name: "drafting", done: project.StatusScriptGenerated, handler: handlers.Drafting},
			{name: "synthesis", done: project.StatusAudioGenerated, handler: handlers.Synthesis},
			{name: "visuals", done: project.StatusVisualsGenerated, handler: handlers.Visuals},
			{name: "compose", done: project.StatusVideoComposed, handler: handlers.Compose},
			{name: "publish", done: project.StatusUploaded, handler: handlers.Publish},
		},
	}
}

// Build wires the production handlers from config and returns the Manager.
func Build(cfg *config.Config, logger *slog.Logger, store *catalog.Store, notifier notifications.Service, deps Dependencies) (*Manager, error) {
	drafting, err := NewDraftingHandler(cfg, deps.Generator, logger)
	if err != nil {
		return nil, err
	}
	synthesis, err := NewSynthesisHandler(cfg, deps.Speech, deps.Prober, logger)
	if err != nil {
		return nil, err
	}
	return NewManager(cfg, logger, store, notifier, Handlers{
		Drafting:  drafting,
		Synthesis: synthesis,
		Visuals:   NewVisualsHandler(cfg, logger),
		Compose:   NewComposeHandler(cfg, deps.Renderer, logger),
		Publish:   NewPublishHandler(cfg, deps.Uploader, logger),
	}), nil
}

// Dependencies are the external collaborators the production handlers need.
type Dependencies struct {
	Generator ScriptGenerator
	Speech    tts.Provider
	Prober    AudioProber
	Renderer  ClipRenderer
	Uploader  VideoUploader
}

// Run executes every remaining phase for the project, starting from its
// recorded status. Projects whose brief did not request upload, and configs
// with upload disabled, stop at ready_to_upload.
func (m *Manager) Run(ctx context.Context, p *project.Project) error {
	if p == nil {
		return services.Wrap(services.ErrValidation, "pipeline", "run", "nil project", nil)
	}
	if p.Status.IsTerminal() || p.Status == project.StatusFailed {
		return services.Wrap(services.ErrValidation, "pipeline", "run",
			fmt.Sprintf("project %s is %s and cannot be processed", p.ID, p.Status), nil)
	}

	for {
		next, ok := m.phaseFor(p.Status)
		if !ok {
			return nil
		}
		if next.name == "publish" && !m.shouldUpload(p) {
			m.logger.Info("upload not requested; project left ready to upload",
				logging.String(logging.FieldProjectID, p.ID))
			return nil
		}
		if err := m.runPhase(ctx, next, p); err != nil {
			return err
		}
		// Composition leaves nothing to review; mark ready immediately.
		if p.Status == project.StatusVideoComposed {
			if err := m.advance(ctx, p, project.StatusReadyToUpload); err != nil {
				return err
			}
		}
		if p.Status == project.StatusUploaded {
			return nil
		}
	}
}

// phaseFor maps the current status to the phase that consumes it.
func (m *Manager) phaseFor(status project.Status) (phase, bool) {
	switch status {
	case project.StatusDraft:
		return m.phases[0], true
	case project.StatusScriptGenerated:
		return m.phases[1], true
	case project.StatusAudioGenerated:
		return m.phases[2], true
	case project.StatusVisualsGenerated:
		return m.phases[3], true
	case project.StatusReadyToUpload:
		return m.phases[4], true
	default:
		return phase{}, false
	}
}

func (m *Manager) shouldUpload(p *project.Project) bool {
	return m.cfg.Upload.Enabled || autoUpload(p)
}

func (m *Manager) runPhase(ctx context.Context, ph phase, p *project.Project) error {
	ctx = services.WithStage(services.WithProjectID(ctx, p.ID), ph.name)
	logger := logging.WithContext(ctx, m.logger)

	start := time.Now()
	logger.Info("phase started", logging.String(logging.FieldEventType, "phase_start"))

	if ph.handler == nil {
		return m.fail(ctx, p, ph.name,
			services.Wrap(services.ErrConfiguration, ph.name, "run", "phase handler unavailable", nil))
	}
	if err := ph.handler.Prepare(ctx, p); err != nil {
		return m.fail(ctx, p, ph.name, err)
	}
	if err := ph.handler.Execute(ctx, p); err != nil {
		return m.fail(ctx, p, ph.name, err)
	}
	if err := m.advance(ctx, p, ph.done); err != nil {
		return err
	}

	logger.Info("phase completed",
		logging.String(logging.FieldEventType, "phase_complete"),
		logging.Duration("elapsed", time.Since(start)),
	)
	m.notifyPhase(ctx, p)
	return nil
}

// advance records the next status and persists the project.
func (m *Manager) advance(ctx context.Context, p *project.Project, next project.Status) error {
	if m.cfg.Workflow.StrictTransitions {
		if err := p.UpdateStatusChecked(next); err != nil {
			return err
		}
	} else {
		p.UpdateStatus(next)
	}
	delete(p.Metadata, metaLastError)
	return m.persist(ctx, p)
}

// persist saves the project document and mirrors it into the catalog. The
// document is authoritative; a catalog failure is logged, not fatal.
func (m *Manager) persist(ctx context.Context, p *project.Project) error {
	path := project.DocumentPath(m.cfg.Paths.OutputDir, p.ID)
	if _, err := p.SaveToFile(path); err != nil {
		return err
	}
	if m.catalog != nil {
		if err := m.catalog.Upsert(ctx, p, path); err != nil {
			m.logger.Warn("catalog update failed",
				logging.String(logging.FieldProjectID, p.ID),
				logging.Error(err))
		}
	}
	return nil
}

// fail marks the project failed, persists the cause, and returns it.
func (m *Manager) fail(ctx context.Context, p *project.Project, phaseName string, cause error) error {
	if p.Metadata == nil {
		p.Metadata = make(map[string]string)
	}
	p.Metadata[metaLastError] = cause.Error()
	if !p.Status.IsTerminal() {
		p.UpdateStatus(project.StatusFailed)
	}
	if err := m.persist(ctx, p); err != nil {
		m.logger.Error("failed to persist failure state",
			logging.String(logging.FieldProjectID, p.ID),
			logging.Error(err))
	}
	if err := m.notifier.NotifyError(ctx, cause, "phase "+phaseName); err != nil {
		m.logger.Warn("error notification failed", logging.Error(err))
	}
	return cause
}

func (m *Manager) notifyPhase(ctx context.Context, p *project.Project) {
	var err error
	switch p.Status {
	case project.StatusScriptGenerated:
		segments := 0
		if p.Script != nil {
			segments = len(p.Script.Segments)
		}
		err = m.notifier.NotifyScriptGenerated(ctx, p.ProductName, segments)
	case project.StatusAudioGenerated:
		err = m.notifier.NotifyAudioGenerated(ctx, p.ProductName, len(p.AudioClips))
	case project.StatusVisualsGenerated:
		err = m.notifier.NotifyVisualsGenerated(ctx, p.ProductName)
	case project.StatusVideoComposed:
		err = m.notifier.NotifyVideoComposed(ctx, p.ProductName, p.FinalVideoPath)
	case project.StatusUploaded:
		err = m.notifier.NotifyUploaded(ctx, p.ProductName, p.Upload.VideoURL)
	default:
		return
	}
	if err != nil {
		m.logger.Warn("phase notification failed",
			logging.String(logging.FieldProjectID, p.ID),
			logging.Error(err))
	}
}

// HealthCheck reports the readiness of every phase handler.
func (m *Manager) HealthCheck(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(m.phases))
	for _, ph := range m.phases {
		if ph.handler == nil {
			checks = append(checks, stage.Unhealthy(ph.name, "handler unavailable"))
			continue
		}
		checks = append(checks, ph.handler.HealthCheck(ctx))
	}
	return checks
}
