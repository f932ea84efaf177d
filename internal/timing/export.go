package timing

import (
	"regexp"
	"strings"

	"shortcast/internal/script"
)

// pausePlaceholder is the synthesis-tool-neutral token substituted for pause
// marks on export. Providers translate it into their own break directives.
const pausePlaceholder = "..."

// emphasisVolume is the volume multiplier applied to emphasized words.
const emphasisVolume = 1.2

// PitchPoint is one control point of a pitch contour: a position expressed as
// a fraction of the segment, and the pitch multiplier to apply there.
type PitchPoint struct {
	Position   float64 `json:"position"`
	Multiplier float64 `json:"multiplier"`
}

// SegmentExport is the provider-agnostic synthesis request for one segment.
type SegmentExport struct {
	ID                string             `json:"id"`
	Text              string             `json:"text"`
	Duration          float64            `json:"duration"`
	Emotion           script.Emotion     `json:"emotion"`
	EmphasisWords     []string           `json:"emphasis_words,omitempty"`
	SpeakingRate      float64            `json:"speaking_rate"`
	PitchContour      []PitchPoint       `json:"pitch_contour"`
	VolumeAdjustments map[string]float64 `json:"volume_adjustments,omitempty"`
}

var speakingRates = map[script.Emotion]float64{
	script.EmotionExcited:   1.1,
	script.EmotionHappy:     1.05,
	script.EmotionCurious:   0.95,
	script.EmotionSurprised: 1.15,
	script.EmotionNeutral:   1.0,
}

var pitchContours = map[script.Emotion][]PitchPoint{
	script.EmotionExcited:   {{0, 1.1}, {0.5, 1.2}, {1.0, 1.15}},
	script.EmotionHappy:     {{0, 1.05}, {0.5, 1.1}, {1.0, 1.05}},
	script.EmotionCurious:   {{0, 1.0}, {0.8, 1.1}, {1.0, 1.2}}, // rising
	script.EmotionSurprised: {{0, 1.0}, {0.3, 1.3}, {1.0, 1.1}},
	script.EmotionNeutral:   {{0, 1.0}, {0.5, 1.0}, {1.0, 0.95}},
}

// ExportForTTS maps a timed script into synthesis requests. It reads the
// script without mutating it, so exporting twice yields identical output.
func (e *Engine) ExportForTTS(s *script.Script) []SegmentExport {
	exports := make([]SegmentExport, 0, len(s.Segments))
	for _, segment := range s.Segments {
		exports = append(exports, SegmentExport{
			ID:                segment.ID,
			Text:              renderPauses(segment),
			Duration:          segment.Duration,
			Emotion:           segment.Emotion,
			EmphasisWords:     append([]string(nil), segment.EmphasisWords...),
			SpeakingRate:      speakingRateFor(segment.Emotion),
			PitchContour:      contourFor(segment.Emotion),
			VolumeAdjustments: volumeAdjustments(segment.EmphasisWords),
		})
	}
	return exports
}

func speakingRateFor(emotion script.Emotion) float64 {
	if rate, ok := speakingRates[emotion]; ok {
		return rate
	}
	return 1.0
}

func contourFor(emotion script.Emotion) []PitchPoint {
	contour, ok := pitchContours[emotion]
	if !ok {
		return []PitchPoint{{0, 1.0}, {1.0, 1.0}}
	}
	cp := make([]PitchPoint, len(contour))
	copy(cp, contour)
	return cp
}

func volumeAdjustments(words []string) map[string]float64 {
	if len(words) == 0 {
		return nil
	}
	adjustments := make(map[string]float64, len(words))
	for _, word := range words {
		adjustments[word] = emphasisVolume
	}
	return adjustments
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// renderPauses interleaves pause placeholders at their recorded rune offsets
// and normalizes whitespace for synthesis input.
func renderPauses(segment *script.Segment) string {
	if len(segment.Pauses) == 0 {
		return collapseSpaces(segment.Text)
	}
	runes := []rune(segment.Text)
	var b strings.Builder
	next := 0
	for i := 0; i <= len(runes); i++ {
		for next < len(segment.Pauses) && segment.Pauses[next].Offset == i {
			b.WriteString(pausePlaceholder)
			b.WriteByte(' ')
			next++
		}
		if i < len(runes) {
			b.WriteRune(runes[i])
		}
	}
	return collapseSpaces(b.String())
}

func collapseSpaces(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}
