package script

import (
	"strings"
	"testing"
)

func threeSegmentScript() *Script {
	s := New("AquaBottle", StyleEducational)
	s.AddSegment(NewSegment("first beat", 3))
	s.AddSegment(NewSegment("second beat", 4))
	s.AddSegment(NewSegment("third beat", 5))
	return s
}

func TestTotalsAndFullText(t *testing.T) {
	s := threeSegmentScript()

	if got := s.TotalDuration(); got != 12 {
		t.Fatalf("TotalDuration = %v", got)
	}
	if got := s.TotalWordCount(); got != 6 {
		t.Fatalf("TotalWordCount = %d", got)
	}
	if got := s.FullText(); got != "first beat second beat third beat" {
		t.Fatalf("FullText = %q", got)
	}
}

func TestRemoveSegment(t *testing.T) {
	s := threeSegmentScript()
	victim := s.Segments[1].ID

	if !s.RemoveSegment(victim) {
		t.Fatal("RemoveSegment reported no removal")
	}
	if len(s.Segments) != 2 {
		t.Fatalf("segments = %d", len(s.Segments))
	}
	if s.GetSegment(victim) != nil {
		t.Fatal("removed segment still reachable")
	}
	if s.RemoveSegment(victim) {
		t.Fatal("second removal reported success")
	}
}

func TestReorderSegments(t *testing.T) {
	s := threeSegmentScript()
	ids := []string{s.Segments[2].ID, s.Segments[0].ID, s.Segments[1].ID}

	if !s.ReorderSegments(ids) {
		t.Fatal("ReorderSegments failed")
	}
	if s.Segments[0].Text != "third beat" || s.Segments[2].Text != "second beat" {
		t.Fatalf("order = %q %q %q", s.Segments[0].Text, s.Segments[1].Text, s.Segments[2].Text)
	}

	if s.ReorderSegments(ids[:2]) {
		t.Fatal("partial permutation accepted")
	}
	if s.ReorderSegments([]string{ids[0], ids[1], "unknown"}) {
		t.Fatal("foreign id accepted")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := threeSegmentScript()
	s.Tags = []string{"gadgets"}
	s.Segments[0].EmphasisWords = []string{"first"}
	s.Segments[0].Pauses = []Pause{{Offset: 5, Duration: 0.2}}

	cp := s.Clone()
	cp.Segments[0].Text = "changed"
	cp.Segments[0].EmphasisWords[0] = "changed"
	cp.Segments[0].Pauses[0].Duration = 9
	cp.Tags[0] = "changed"

	if s.Segments[0].Text != "first beat" {
		t.Fatal("clone shares segment text")
	}
	if s.Segments[0].EmphasisWords[0] != "first" {
		t.Fatal("clone shares emphasis slice")
	}
	if s.Segments[0].Pauses[0].Duration != 0.2 {
		t.Fatal("clone shares pause slice")
	}
	if s.Tags[0] != "gadgets" {
		t.Fatal("clone shares tags")
	}
}

func TestValidateRejectsDuplicateSegmentIDs(t *testing.T) {
	s := threeSegmentScript()
	s.Segments[1].ID = s.Segments[0].ID

	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate segment id") {
		t.Fatalf("err = %v", err)
	}
}

func TestSegmentValidate(t *testing.T) {
	seg := NewSegment("新商品のご紹介、どうぞ", 4)
	if err := seg.Validate(); err != nil {
		t.Fatalf("valid segment rejected: %v", err)
	}

	negative := NewSegment("text", -1)
	if err := negative.Validate(); err == nil {
		t.Fatal("negative duration accepted")
	}

	badEmotion := NewSegment("text", 1)
	badEmotion.Emotion = Emotion("furious")
	if err := badEmotion.Validate(); err == nil {
		t.Fatal("unknown emotion accepted")
	}

	badEmphasis := NewSegment("text", 1)
	badEmphasis.EmphasisWords = []string{"absent"}
	if err := badEmphasis.Validate(); err == nil {
		t.Fatal("emphasis word outside text accepted")
	}

	badPause := NewSegment("text", 1)
	badPause.Pauses = []Pause{{Offset: 99, Duration: 0.2}}
	if err := badPause.Validate(); err == nil {
		t.Fatal("pause offset outside text accepted")
	}
}

func TestParseStyleAndEmotion(t *testing.T) {
	if style, ok := ParseStyle(" Educational "); !ok || style != StyleEducational {
		t.Fatalf("ParseStyle = %s, %v", style, ok)
	}
	if style, ok := ParseStyle(""); !ok || style != StyleHumorous {
		t.Fatalf("empty ParseStyle = %s, %v", style, ok)
	}
	if _, ok := ParseStyle("noir"); ok {
		t.Fatal("unknown style accepted")
	}

	if emotion, ok := ParseEmotion("EXCITED"); !ok || emotion != EmotionExcited {
		t.Fatalf("ParseEmotion = %s, %v", emotion, ok)
	}
	if _, ok := ParseEmotion("furious"); ok {
		t.Fatal("unknown emotion accepted")
	}
}
