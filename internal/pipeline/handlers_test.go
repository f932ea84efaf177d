package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"shortcast/internal/brief"
	"shortcast/internal/project"
	"shortcast/internal/script"
	"shortcast/internal/services"
	"shortcast/internal/services/tts"
	"shortcast/internal/services/youtube"
	"shortcast/internal/testsupport"
)

type fakeGenerator struct {
	script *script.Script
	err    error
	brief  *brief.Brief
}

func (f *fakeGenerator) GenerateScript(_ context.Context, b *brief.Brief, _ string) (*script.Script, error) {
	f.brief = b
	return f.script, f.err
}

func (f *fakeGenerator) HealthCheck(context.Context) error { return nil }

type fakeSpeech struct {
	requests []tts.Request
	err      error
}

func (f *fakeSpeech) Name() string { return "fake" }

func (f *fakeSpeech) Synthesize(_ context.Context, req tts.Request) ([]byte, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("audio-bytes"), nil
}

type fixedProber struct {
	duration float64
}

func (f fixedProber) AudioDuration(context.Context, string) (float64, error) {
	return f.duration, nil
}

func draftedScript(product string) *script.Script {
	s := script.New(product, script.StyleEducational)
	seg := script.NewSegment("この商品は本当にすごいんです。毎日の生活がもっと楽になります。", 6)
	seg.VisualDescription = "product close-up"
	s.AddSegment(seg)
	s.AddSegment(script.NewSegment("今すぐチェックしてみてください。", 3))
	return s
}

func TestDraftingHandlerTimesGeneratedScript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	gen := &fakeGenerator{script: draftedScript("AquaBottle")}
	h, err := NewDraftingHandler(cfg, gen, nil)
	if err != nil {
		t.Fatalf("NewDraftingHandler: %v", err)
	}

	p := project.New("launch", "AquaBottle")
	StashBrief(p, &brief.Brief{
		Product:    "AquaBottle",
		Style:      "educational",
		SellingPts: []string{"keeps drinks cold", "leakproof"},
	})

	if err := h.Prepare(context.Background(), p); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !p.HasScript() {
		t.Fatal("no script attached")
	}
	if total := p.Script.TotalDuration(); total > cfg.Script.MaxTotalDuration {
		t.Fatalf("total duration %.2f exceeds ceiling", total)
	}
	if len(gen.brief.SellingPts) != 2 {
		t.Fatalf("brief not rebuilt from metadata: %+v", gen.brief)
	}
}

func TestDraftingHandlerPropagatesGeneratorFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cause := services.Wrap(services.ErrScriptGeneration, "generator", "generate", "empty draft", nil)
	h, err := NewDraftingHandler(cfg, &fakeGenerator{err: cause}, nil)
	if err != nil {
		t.Fatalf("NewDraftingHandler: %v", err)
	}

	p := project.New("launch", "AquaBottle")
	if err := h.Execute(context.Background(), p); !errors.Is(err, services.ErrScriptGeneration) {
		t.Fatalf("err = %v", err)
	}
}

func TestSynthesisHandlerNarratesEverySegment(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	speech := &fakeSpeech{}
	h, err := NewSynthesisHandler(cfg, speech, fixedProber{duration: 2.5}, nil)
	if err != nil {
		t.Fatalf("NewSynthesisHandler: %v", err)
	}

	p := project.New("launch", "AquaBottle")
	p.Script = draftedScript("AquaBottle")

	if err := h.Prepare(context.Background(), p); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(p.AudioClips) != len(p.Script.Segments) {
		t.Fatalf("clips = %d, segments = %d", len(p.AudioClips), len(p.Script.Segments))
	}
	for i, clip := range p.AudioClips {
		if clip.SegmentID != p.Script.Segments[i].ID {
			t.Fatalf("clip %d out of segment order", i)
		}
		if clip.Duration != 2.5 {
			t.Fatalf("clip duration = %v, want probed value", clip.Duration)
		}
		if clip.Settings.Provider != "fake" {
			t.Fatalf("settings provider = %q", clip.Settings.Provider)
		}
		data, readErr := os.ReadFile(clip.FilePath)
		if readErr != nil {
			t.Fatalf("audio file: %v", readErr)
		}
		if string(data) != "audio-bytes" {
			t.Fatalf("audio content = %q", data)
		}
	}
}

func TestSynthesisHandlerRequiresScript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	h, err := NewSynthesisHandler(cfg, &fakeSpeech{}, fixedProber{}, nil)
	if err != nil {
		t.Fatalf("NewSynthesisHandler: %v", err)
	}

	p := project.New("launch", "AquaBottle")
	if err := h.Prepare(context.Background(), p); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestVisualsHandlerPlansClipPerSegment(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	h := NewVisualsHandler(cfg, nil)

	p := project.New("launch", "AquaBottle")
	p.Script = draftedScript("AquaBottle")
	for _, segment := range p.Script.Segments {
		p.AddAudioClip(project.NewAudioClip(segment.ID, segment.Text, "", 2))
	}

	if err := h.Prepare(context.Background(), p); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(p.VideoClips) != len(p.Script.Segments) {
		t.Fatalf("clips = %d", len(p.VideoClips))
	}
	first := p.VideoClips[0]
	if len(first.VisualElements) != 2 {
		t.Fatalf("elements = %d, want caption and background", len(first.VisualElements))
	}
	if first.VisualElements[0].Type != "caption" {
		t.Fatalf("first element = %s", first.VisualElements[0].Type)
	}
	second := p.VideoClips[1]
	if second.VisualElements[0].StartTime != 2 {
		t.Fatalf("second clip starts at %v", second.VisualElements[0].StartTime)
	}
}

func TestVisualsHandlerRejectsMissingNarration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	h := NewVisualsHandler(cfg, nil)

	p := project.New("launch", "AquaBottle")
	p.Script = draftedScript("AquaBottle")
	p.AddAudioClip(project.NewAudioClip(p.Script.Segments[0].ID, "text", "", 2))

	if err := h.Execute(context.Background(), p); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

type fakeRenderer struct {
	segmentClips []string
	composed     []string
	thumbErr     error
}

func (f *fakeRenderer) SegmentClip(_ context.Context, _, _, outPath string, _ float64) error {
	f.segmentClips = append(f.segmentClips, outPath)
	return nil
}

func (f *fakeRenderer) Compose(_ context.Context, clipPaths []string, _ string) error {
	f.composed = clipPaths
	return nil
}

func (f *fakeRenderer) Thumbnail(context.Context, string, string, float64) error {
	return f.thumbErr
}

func (f *fakeRenderer) HealthCheck(context.Context) error { return nil }

func composableProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New("launch", "AquaBottle")
	p.Script = draftedScript("AquaBottle")
	for _, segment := range p.Script.Segments {
		audio := project.NewAudioClip(segment.ID, segment.Text, "/tmp/"+segment.ID+".mp3", 2)
		p.AddAudioClip(audio)
		p.AddVideoClip(project.NewVideoClip(segment.ID, audio.ID, 2))
	}
	return p
}

func TestComposeHandlerRendersAndConcatenates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	renderer := &fakeRenderer{}
	h := NewComposeHandler(cfg, renderer, nil)
	p := composableProject(t)

	if err := h.Prepare(context.Background(), p); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(renderer.segmentClips) != 2 || len(renderer.composed) != 2 {
		t.Fatalf("rendered %d clips, composed %d", len(renderer.segmentClips), len(renderer.composed))
	}
	if p.FinalVideoPath == "" || !strings.HasSuffix(p.FinalVideoPath, ".mp4") {
		t.Fatalf("final video = %q", p.FinalVideoPath)
	}
	if !strings.Contains(p.FinalVideoPath, "AquaBottle") {
		t.Fatalf("final video not named after product: %q", p.FinalVideoPath)
	}
	if p.Upload.ThumbnailPath == "" {
		t.Fatal("thumbnail path not recorded")
	}
	for _, clip := range p.VideoClips {
		if clip.FilePath == "" {
			t.Fatal("video clip path not recorded")
		}
	}
}

func TestComposeHandlerToleratesThumbnailFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	renderer := &fakeRenderer{thumbErr: errors.New("no keyframe")}
	h := NewComposeHandler(cfg, renderer, nil)
	p := composableProject(t)

	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if p.Upload.ThumbnailPath != "" {
		t.Fatal("thumbnail recorded despite failure")
	}
}

type fakeUploader struct {
	result *youtube.Result
	err    error
}

func (f *fakeUploader) Upload(context.Context, *project.Project) (*youtube.Result, error) {
	return f.result, f.err
}

func TestPublishHandlerRecordsHostedIdentity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	uploaded := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	h := NewPublishHandler(cfg, &fakeUploader{result: &youtube.Result{
		VideoID:    "vid-9",
		VideoURL:   "https://www.youtube.com/watch?v=vid-9",
		UploadedAt: uploaded,
	}}, nil)

	p := project.New("launch", "AquaBottle")
	p.Script = draftedScript("AquaBottle")
	finalPath := cfg.Paths.OutputDir + "/final.mp4"
	testsupport.WriteFile(t, finalPath, 32)
	p.FinalVideoPath = finalPath

	if err := h.Prepare(context.Background(), p); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.Upload.Title == "" {
		t.Fatal("upload metadata not derived")
	}
	if err := h.Execute(context.Background(), p); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if p.Upload.VideoID != "vid-9" || !p.Upload.UploadedAt.Equal(uploaded) {
		t.Fatalf("upload record = %+v", p.Upload)
	}
}

func TestPublishHandlerRequiresFinalVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	h := NewPublishHandler(cfg, &fakeUploader{}, nil)
	p := project.New("launch", "AquaBottle")

	if err := h.Prepare(context.Background(), p); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
