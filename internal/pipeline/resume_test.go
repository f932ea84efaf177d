package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"shortcast/internal/project"
	"shortcast/internal/services"
	"shortcast/internal/testsupport"
)

func TestResumeDraftRestartsPipeline(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))
	p := project.New("launch", "AquaBottle")

	if err := m.Resume(context.Background(), p); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if p.Status != project.StatusReadyToUpload {
		t.Fatalf("status = %s", p.Status)
	}
}

func TestResumeReadyToUploadRunsUploadOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	handlers := passingHandlers(cfg)
	drafting := handlers.Drafting.(*fakeHandler)
	publish := handlers.Publish.(*fakeHandler)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, handlers)

	p := project.New("launch", "AquaBottle")
	finalPath := filepath.Join(cfg.Paths.OutputDir, "final.mp4")
	testsupport.WriteFile(t, finalPath, 64)
	p.FinalVideoPath = finalPath
	p.UpdateStatus(project.StatusReadyToUpload)

	if err := m.Resume(context.Background(), p); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if p.Status != project.StatusUploaded {
		t.Fatalf("status = %s", p.Status)
	}
	if drafting.calls != 0 {
		t.Fatal("drafting re-ran on an upload-only resume")
	}
	if publish.calls != 1 {
		t.Fatalf("publish calls = %d", publish.calls)
	}
}

func TestResumeReadyToUploadMissingVideoFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))

	p := project.New("launch", "AquaBottle")
	p.FinalVideoPath = filepath.Join(cfg.Paths.OutputDir, "gone.mp4")
	p.UpdateStatus(project.StatusReadyToUpload)

	err := m.Resume(context.Background(), p)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want not-found marker", err)
	}
	if p.Status != project.StatusReadyToUpload {
		t.Fatalf("status changed to %s", p.Status)
	}
}

func TestResumeIntermediateStatusesUnsupported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := NewManager(cfg, nil, nil, &recordingNotifier{}, passingHandlers(cfg))

	for _, status := range []project.Status{
		project.StatusScriptGenerated,
		project.StatusAudioGenerated,
		project.StatusVisualsGenerated,
		project.StatusVideoComposed,
		project.StatusFailed,
		project.StatusUploaded,
	} {
		p := project.New("launch", "AquaBottle")
		p.UpdateStatus(status)

		err := m.Resume(context.Background(), p)
		if !errors.Is(err, ErrUnsupportedResume) {
			t.Fatalf("status %s: err = %v", status, err)
		}
		var unsupported *UnsupportedResumeError
		if !errors.As(err, &unsupported) {
			t.Fatalf("status %s: err type %T", status, err)
		}
		if unsupported.Status != status {
			t.Fatalf("error names %s, want %s", unsupported.Status, status)
		}
	}
}
