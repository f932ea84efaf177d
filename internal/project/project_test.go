package project

import (
	"testing"
	"time"

	"shortcast/internal/script"
)

func sampleProject(t *testing.T) *Project {
	t.Helper()
	p := New("spring-campaign", "AquaBottle")
	p.LandingURL = "https://example.com/aqua"
	s := script.New("AquaBottle", script.StyleEducational)
	s.LandingURL = "https://example.com/aqua"
	seg := script.NewSegment("Meet the bottle that keeps drinks cold all day.", 4.5)
	seg.Emotion = script.EmotionExcited
	seg.EmphasisWords = []string{"cold"}
	seg.Pauses = []script.Pause{{Offset: 15, Duration: 0.3}}
	s.AddSegment(seg)
	s.Title = "AquaBottle in 60 seconds"
	s.Tags = []string{"aqua", "bottle"}
	s.Hashtags = []string{"#aqua"}
	p.Script = s
	return p
}

func TestNewProjectDefaults(t *testing.T) {
	p := New("launch", "Widget")
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Status != StatusDraft {
		t.Fatalf("status = %q, want draft", p.Status)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatal("timestamps should be set and equal at creation")
	}
	if p.CreatedAt.Location() != time.UTC {
		t.Fatal("timestamps should be UTC")
	}
}

func TestUpdateStatusTouches(t *testing.T) {
	p := New("launch", "Widget")
	before := p.UpdatedAt
	time.Sleep(2 * time.Millisecond)
	p.UpdateStatus(StatusScriptGenerated)
	if p.Status != StatusScriptGenerated {
		t.Fatalf("status = %q", p.Status)
	}
	if !p.UpdatedAt.After(before) {
		t.Fatal("UpdatedAt not advanced")
	}
}

func TestUpdateStatusCheckedRejectsSkip(t *testing.T) {
	p := New("launch", "Widget")
	if err := p.UpdateStatusChecked(StatusVideoComposed); err == nil {
		t.Fatal("expected strict transition error")
	}
	if p.Status != StatusDraft {
		t.Fatalf("status mutated on rejected transition: %q", p.Status)
	}
	if err := p.UpdateStatusChecked(StatusScriptGenerated); err != nil {
		t.Fatalf("legal transition rejected: %v", err)
	}
}

func TestClipAccessors(t *testing.T) {
	p := sampleProject(t)
	clip := NewAudioClip("seg-1", "hello", "/tmp/a.mp3", 2.5)
	p.AddAudioClip(clip)
	got, ok := p.GetAudioClip(clip.ID)
	if !ok || got.SegmentID != "seg-1" {
		t.Fatalf("GetAudioClip = %+v, %v", got, ok)
	}
	if _, ok := p.GetAudioClip("missing"); ok {
		t.Fatal("expected miss for unknown clip id")
	}
}
