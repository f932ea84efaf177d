package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"shortcast/internal/config"
	"shortcast/internal/project"
	"shortcast/internal/script"
	"shortcast/internal/services"
	"shortcast/internal/stage"
	"shortcast/internal/testsupport"
)

type fakeHandler struct {
	name       string
	prepareErr error
	execute    func(ctx context.Context, p *project.Project) error
	calls      int
}

func (f *fakeHandler) Prepare(context.Context, *project.Project) error {
	return f.prepareErr
}

func (f *fakeHandler) Execute(ctx context.Context, p *project.Project) error {
	f.calls++
	if f.execute != nil {
		return f.execute(ctx, p)
	}
	return nil
}

func (f *fakeHandler) HealthCheck(context.Context) stage.Health {
	return stage.Healthy(f.name)
}

type recordingNotifier struct {
	phases []string
	errors []string
}

func (r *recordingNotifier) NotifyScriptGenerated(context.Context, string, int) error {
	r.phases = append(r.phases, "script")
	return nil
}

func (r *recordingNotifier) NotifyAudioGenerated(context.Context, string, int) error {
	r.phases = append(r.phases, "audio")
	return nil
}

func (r *recordingNotifier) NotifyVisualsGenerated(context.Context, string) error {
	r.phases = append(r.phases, "visuals")
	return nil
}

func (r *recordingNotifier) NotifyVideoComposed(context.Context, string, string) error {
	r.phases = append(r.phases, "composed")
	return nil
}

func (r *recordingNotifier) NotifyUploaded(context.Context, string, string) error {
	r.phases = append(r.phases, "uploaded")
	return nil
}

func (r *recordingNotifier) NotifyError(_ context.Context, err error, _ string) error {
	r.errors = append(r.errors, err.Error())
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func passingHandlers(cfg *config.Config) Handlers {
	return Handlers{
		Drafting: &fakeHandler{name: "drafting", execute: func(_ context.Context, p *project.Project) error {
			s := script.New(p.ProductName, script.StyleEducational)
			s.AddSegment(script.NewSegment("Meet the product.", 3))
			p.Script = s
			return nil
		}},
		Synthesis: &fakeHandler{name: "synthesis", execute: func(_ context.Context, p *project.Project) error {
			for _, segment := range p.Script.Segments {
				p.AddAudioClip(project.NewAudioClip(segment.ID, segment.Text, "", segment.Duration))
			}
			return nil
		}},
		Visuals: &fakeHandler{name: "visuals", execute: func(_ context.Context, p *project.Project) error {
			for _, clip := range p.AudioClips {
				p.AddVideoClip(project.NewVideoClip(clip.SegmentID, clip.ID, clip.Duration))
			}
			return nil
		}},
		Compose: &fakeHandler{name: "compose", execute: func(_ context.Context, p *project.Project) error {
			p.FinalVideoPath = cfg.Paths.OutputDir + "/final.mp4"
			return nil
		}},
		Publish: &fakeHandler{name: "publish", execute: func(_ context.Context, p *project.Project) error {
			p.Upload.VideoID = "vid-1"
			p.Upload.VideoURL = "https://www.youtube.com/watch?v=vid-1"
			return nil
		}},
	}
}

func TestRunStopsAtReadyToUploadWhenUploadDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	notifier := &recordingNotifier{}
	m := NewManager(cfg, nil, nil, notifier, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")

	if err := m.Run(context.Background(), p); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Status != project.StatusReadyToUpload {
		t.Fatalf("status = %s", p.Status)
	}

	doc := project.DocumentPath(cfg.Paths.OutputDir, p.ID)
	loaded, err := project.LoadFromFile(doc)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Status != project.StatusReadyToUpload {
		t.Fatalf("persisted status = %s", loaded.Status)
	}
	want := []string{"script", "audio", "visuals", "composed"}
	if len(notifier.phases) != len(want) {
		t.Fatalf("notifications = %v", notifier.phases)
	}
	for i, phase := range want {
		if notifier.phases[i] != phase {
			t.Fatalf("notifications = %v", notifier.phases)
		}
	}
}

func TestRunCompletesUploadWhenEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithUploadEnabled())
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")

	if err := m.Run(context.Background(), p); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Status != project.StatusUploaded {
		t.Fatalf("status = %s", p.Status)
	}
	if p.Upload.VideoID != "vid-1" {
		t.Fatalf("video id = %q", p.Upload.VideoID)
	}
}

func TestRunMarksFailureAndNotifies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	notifier := &recordingNotifier{}
	handlers := passingHandlers(cfg)
	cause := services.Wrap(services.ErrTransient, "synthesis", "synthesize", "provider unavailable", nil)
	handlers.Synthesis = &fakeHandler{name: "synthesis", execute: func(context.Context, *project.Project) error {
		return cause
	}}
	m := NewManager(cfg, nil, nil, notifier, handlers)
	p := project.New("launch", "AquaBottle")

	err := m.Run(context.Background(), p)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("err = %v", err)
	}
	if p.Status != project.StatusFailed {
		t.Fatalf("status = %s", p.Status)
	}
	if p.Metadata[metaLastError] == "" {
		t.Fatal("failure cause not recorded")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("error notifications = %v", notifier.errors)
	}

	loaded, loadErr := project.LoadFromFile(project.DocumentPath(cfg.Paths.OutputDir, p.ID))
	if loadErr != nil {
		t.Fatalf("LoadFromFile: %v", loadErr)
	}
	if loaded.Status != project.StatusFailed {
		t.Fatalf("persisted status = %s", loaded.Status)
	}
}

func TestRunRejectsTerminalProjects(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")
	p.UpdateStatus(project.StatusArchived)

	if err := m.Run(context.Background(), p); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation marker", err)
	}
}

func TestRunRecordsInCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	m := NewManager(cfg, nil, store, &recordingNotifier{}, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")

	if err := m.Run(context.Background(), p); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entry, err := store.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("catalog.Get: %v", err)
	}
	if entry.Status != project.StatusReadyToUpload {
		t.Fatalf("catalog status = %s", entry.Status)
	}
}

func TestRunUploadsWhenBriefRequestedIt(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")
	p.Metadata = map[string]string{metaAutoUpload: "true"}

	if err := m.Run(context.Background(), p); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.Status != project.StatusUploaded {
		t.Fatalf("status = %s", p.Status)
	}
}

func TestHealthCheckCoversEveryPhase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	handlers := passingHandlers(cfg)
	handlers.Publish = nil
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, handlers)

	checks := m.HealthCheck(context.Background())
	if len(checks) != 5 {
		t.Fatalf("checks = %d", len(checks))
	}
	if checks[4].Ready {
		t.Fatal("missing publish handler reported healthy")
	}
}

func TestRunFailsCleanlyOnPrepareError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	handlers := passingHandlers(cfg)
	handlers.Drafting = &fakeHandler{
		name:       "drafting",
		prepareErr: services.Wrap(services.ErrValidation, "drafting", "prepare", "no product", nil),
	}
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, handlers)
	p := project.New("launch", "AquaBottle")

	if err := m.Run(context.Background(), p); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	if p.Status != project.StatusFailed {
		t.Fatalf("status = %s", p.Status)
	}
	if _, statErr := os.Stat(project.DocumentPath(cfg.Paths.OutputDir, p.ID)); statErr != nil {
		t.Fatalf("failure state not persisted: %v", statErr)
	}
}
