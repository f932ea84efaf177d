package timing

import (
	"strings"
	"testing"

	"shortcast/internal/script"
)

func TestExportForTTSRendersPausesAndDelivery(t *testing.T) {
	engine := newTestEngine(t, japaneseOptions())
	s := script.New("AquaBottle", script.StyleEducational)
	seg := script.NewSegment("みなさん、体重計に乗るのが怖い人〜？", 8.0)
	s.AddSegment(seg)

	timed, err := engine.Process(s)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	exports := engine.ExportForTTS(timed)
	if len(exports) != 1 {
		t.Fatalf("exports = %d", len(exports))
	}

	export := exports[0]
	if export.ID != timed.Segments[0].ID {
		t.Fatal("export lost segment identity")
	}
	if strings.Count(export.Text, "...") != 2 {
		t.Fatalf("pause placeholders missing: %q", export.Text)
	}
	if !strings.HasPrefix(export.Text, "みなさん、...") {
		t.Fatalf("comma pause misplaced: %q", export.Text)
	}
	if export.Emotion != script.EmotionCurious {
		t.Fatalf("emotion = %s", export.Emotion)
	}
	if export.SpeakingRate != 0.95 {
		t.Fatalf("speaking rate = %v", export.SpeakingRate)
	}
	if len(export.PitchContour) != 3 || export.PitchContour[2].Multiplier != 1.2 {
		t.Fatalf("contour = %+v", export.PitchContour)
	}
}

func TestExportForTTSIsReadOnlyAndRepeatable(t *testing.T) {
	engine := newTestEngine(t, japaneseOptions())
	timed, err := engine.Process(singleSegmentScript("なんとこの革新的な商品が今だけ50%オフ。", 6.0))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	before := timed.Segments[0].Clone()
	first := engine.ExportForTTS(timed)
	second := engine.ExportForTTS(timed)

	if timed.Segments[0].Text != before.Text || timed.Segments[0].Duration != before.Duration {
		t.Fatal("export mutated the script")
	}
	if len(first) != len(second) {
		t.Fatalf("export lengths differ: %d vs %d", len(first), len(second))
	}
	if first[0].Text != second[0].Text || first[0].Duration != second[0].Duration {
		t.Fatalf("exports differ: %+v vs %+v", first[0], second[0])
	}

	// Emphasized words carry the louder-delivery multiplier.
	if first[0].VolumeAdjustments["なんと"] != 1.2 {
		t.Fatalf("volume adjustments = %+v", first[0].VolumeAdjustments)
	}
}

func TestSpeakingRatesPerEmotion(t *testing.T) {
	cases := map[script.Emotion]float64{
		script.EmotionExcited:   1.1,
		script.EmotionHappy:     1.05,
		script.EmotionCurious:   0.95,
		script.EmotionSurprised: 1.15,
		script.EmotionNeutral:   1.0,
	}
	for emotion, want := range cases {
		if got := speakingRateFor(emotion); got != want {
			t.Errorf("speakingRateFor(%s) = %v, want %v", emotion, got, want)
		}
	}
}

func TestSummarizeAggregates(t *testing.T) {
	engine := newTestEngine(t, japaneseOptions())
	s := script.New("AquaBottle", script.StyleEducational)
	s.Title = "60秒でわかるAquaBottle"
	s.AddSegment(script.NewSegment("すごい保冷力です", 3))
	s.AddSegment(script.NewSegment("実は軽いんです", 3))

	timed, err := engine.Process(s)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	summary := Summarize(timed)
	if summary.SegmentCount != 2 {
		t.Fatalf("segment count = %d", summary.SegmentCount)
	}
	if summary.ProductName != "AquaBottle" || summary.Title != s.Title {
		t.Fatalf("summary identity = %+v", summary)
	}
	if len(summary.EmotionsUsed) < 2 {
		t.Fatalf("emotions = %v", summary.EmotionsUsed)
	}
	if !summary.HasEmphasis {
		t.Fatal("emphasis not reflected in summary")
	}
	if summary.TotalDuration <= 0 {
		t.Fatalf("total duration = %v", summary.TotalDuration)
	}
}
