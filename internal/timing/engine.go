package timing

import (
	"math"
	"unicode/utf8"

	"shortcast/internal/script"
	"shortcast/internal/services"
)

const (
	// basePauseBuffer is the fixed breathing allowance added to every
	// recomputed segment duration, in seconds.
	basePauseBuffer = 0.2
	// perCharPause is the proportional pause allowance per character.
	perCharPause = 0.01
	// sentencePackingPause pads each sentence's cost during greedy packing.
	sentencePackingPause = 0.3
)

// Process runs the five timing stages over a script and returns the timed
// result. The input is not mutated. Stage order is fixed: duration recompute,
// long-segment splitting, pause insertion, delivery heuristics, then global
// compression. Out-of-range durations are clamped or recomputed rather than
// rejected; structural problems (no segments, invariant violations) fail the
// whole call before any stage runs.
func (e *Engine) Process(s *script.Script) (*script.Script, error) {
	if s == nil {
		return nil, services.Wrap(services.ErrValidation, "timing", "process", "nil script", nil)
	}
	if len(s.Segments) == 0 {
		return nil, services.Wrap(services.ErrScriptGeneration, "timing", "process", "script has no segments", nil)
	}
	if err := s.Validate(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "timing", "process", "invalid script", err)
	}

	out := s.Clone()
	e.recomputeDurations(out)
	e.splitLongSegments(out)
	e.insertPauses(out)
	e.optimizeDelivery(out)
	e.compressToCeiling(out)
	return out, nil
}

// ExpectedDuration estimates the spoken duration of text under the configured
// reading speed: characters divided by the preset rate, plus a fixed pause
// buffer and a per-character pause allowance.
func (e *Engine) ExpectedDuration(text string) float64 {
	runes := float64(utf8.RuneCountInString(text))
	return runes/e.cps + basePauseBuffer + runes*perCharPause
}

// Stage 1: upstream durations are untrusted estimates. Replace any stored
// duration that strays beyond the tolerance; the engine is the single source
// of truth for timing from here on.
func (e *Engine) recomputeDurations(s *script.Script) {
	for _, segment := range s.Segments {
		expected := e.ExpectedDuration(segment.Text)
		if math.Abs(segment.Duration-expected) > e.opts.AdjustTolerance {
			segment.Duration = expected
		}
	}
}

// Stage 4: fill in emphasis words and emotion for segments the generator left
// unannotated. Both tables are fixed and evaluated in order, so results are
// reproducible.
func (e *Engine) optimizeDelivery(s *script.Script) {
	for _, segment := range s.Segments {
		if len(segment.EmphasisWords) == 0 {
			segment.EmphasisWords = detectEmphasis(segment.Text)
		}
		if segment.Emotion == script.EmotionNeutral {
			segment.Emotion = classifyEmotion(segment.Text)
		}
	}
}

// Stage 5: uniform compression to the total-duration ceiling. Only the
// numeric durations change; text and pauses stay as-is, and synthesis-time
// speaking-rate adjustment absorbs the difference.
func (e *Engine) compressToCeiling(s *script.Script) {
	total := s.TotalDuration()
	if total <= e.opts.MaxTotalDuration {
		return
	}
	factor := e.opts.MaxTotalDuration / total
	for _, segment := range s.Segments {
		segment.Duration *= factor
	}
}
