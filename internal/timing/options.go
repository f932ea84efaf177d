package timing

import (
	"fmt"

	"golang.org/x/text/language"

	"shortcast/internal/services"
)

// Reading speeds in characters per second, by preset name.
var readingSpeeds = map[string]float64{
	"slow":       4.0, // slow, clear speech
	"normal":     5.5, // conversational
	"fast":       7.0, // energetic
	"ultra_fast": 8.5, // disclaimers
}

// ReadingSpeeds returns the named reading-speed presets.
func ReadingSpeeds() map[string]float64 {
	cp := make(map[string]float64, len(readingSpeeds))
	for name, cps := range readingSpeeds {
		cp[name] = cps
	}
	return cp
}

// KnownPreset reports whether name is a recognized reading-speed preset.
func KnownPreset(name string) bool {
	_, ok := readingSpeeds[name]
	return ok
}

// Options is the immutable configuration surface of the engine. All values
// are externally supplied; the engine hard-wires nothing beyond the preset
// table above.
type Options struct {
	// ReadingSpeed names a characters-per-second preset.
	ReadingSpeed string
	// MaxSegmentDuration is the per-segment spoken-duration ceiling in seconds.
	MaxSegmentDuration float64
	// MaxTotalDuration is the whole-script duration ceiling in seconds.
	MaxTotalDuration float64
	// AdjustTolerance is the allowed gap in seconds between a stored segment
	// duration and the recomputed one before the stored value is replaced.
	AdjustTolerance float64
	// Language is a BCP 47 tag selecting sentence and phrase splitting rules.
	Language string
}

// DefaultOptions returns the documented fallbacks.
func DefaultOptions() Options {
	return Options{
		ReadingSpeed:       "normal",
		MaxSegmentDuration: 15,
		MaxTotalDuration:   60,
		AdjustTolerance:    2,
		Language:           "ja",
	}
}

// Engine applies the five processing stages. Construct with New; the zero
// value is not usable.
type Engine struct {
	opts Options
	cps  float64
	cjk  bool
}

// New validates the options and builds an engine. Unknown presets and missing
// numeric thresholds are configuration errors.
func New(opts Options) (*Engine, error) {
	cps, ok := readingSpeeds[opts.ReadingSpeed]
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "timing", "new",
			fmt.Sprintf("unknown reading speed preset %q", opts.ReadingSpeed), nil)
	}
	if opts.MaxSegmentDuration <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "timing", "new",
			"max segment duration must be positive", nil)
	}
	if opts.MaxTotalDuration <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "timing", "new",
			"max total duration must be positive", nil)
	}
	if opts.AdjustTolerance < 0 {
		return nil, services.Wrap(services.ErrConfiguration, "timing", "new",
			"adjust tolerance must not be negative", nil)
	}
	tag, err := language.Parse(opts.Language)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "timing", "new",
			fmt.Sprintf("invalid language tag %q", opts.Language), err)
	}
	base, _ := tag.Base()
	cjk := false
	switch base.String() {
	case "ja", "zh", "ko":
		cjk = true
	}
	return &Engine{opts: opts, cps: cps, cjk: cjk}, nil
}

// Options returns a copy of the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}
