package script

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Emotion classifies the delivery tone of a segment.
type Emotion string

const (
	EmotionNeutral   Emotion = "neutral"
	EmotionExcited   Emotion = "excited"
	EmotionHappy     Emotion = "happy"
	EmotionCurious   Emotion = "curious"
	EmotionSurprised Emotion = "surprised"
)

var allEmotions = []Emotion{
	EmotionNeutral,
	EmotionExcited,
	EmotionHappy,
	EmotionCurious,
	EmotionSurprised,
}

var emotionSet = func() map[Emotion]struct{} {
	set := make(map[Emotion]struct{}, len(allEmotions))
	for _, emotion := range allEmotions {
		set[emotion] = struct{}{}
	}
	return set
}()

// AllEmotions returns the closed set of known emotions.
func AllEmotions() []Emotion {
	cp := make([]Emotion, len(allEmotions))
	copy(cp, allEmotions)
	return cp
}

// ParseEmotion converts a string into a known Emotion. Empty input maps to
// neutral.
func ParseEmotion(value string) (Emotion, bool) {
	normalized := Emotion(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return EmotionNeutral, true
	}
	_, ok := emotionSet[normalized]
	return normalized, ok
}

// Pause is a synthesis-time pause anchored at a rune offset into the segment
// text. Pauses are kept out of band so ordinary text handling cannot corrupt
// them; the TTS export translates them into provider placeholders.
type Pause struct {
	Offset   int     `json:"offset"`
	Duration float64 `json:"duration"`
}

// Segment is a single narrated unit with its own duration and delivery
// metadata. Duration is authoritative only after the timing engine has
// validated it.
type Segment struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Duration          float64  `json:"duration"`
	VisualDescription string   `json:"visual_description,omitempty"`
	TransitionType    string   `json:"transition_type,omitempty"`
	Emotion           Emotion  `json:"emotion"`
	EmphasisWords     []string `json:"emphasis_words,omitempty"`
	Pauses            []Pause  `json:"pauses,omitempty"`
}

// NewSegment builds a segment with a fresh identifier and neutral delivery.
func NewSegment(text string, duration float64) *Segment {
	return &Segment{
		ID:             uuid.NewString(),
		Text:           text,
		Duration:       duration,
		TransitionType: "cut",
		Emotion:        EmotionNeutral,
	}
}

// WordCount returns the whitespace-delimited word count of the segment text.
func (s *Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}

// RuneCount returns the number of runes in the segment text. Speech-rate math
// works in runes, not bytes, so multi-byte scripts time correctly.
func (s *Segment) RuneCount() int {
	return utf8.RuneCountInString(s.Text)
}

// Clone returns a deep copy of the segment.
func (s *Segment) Clone() *Segment {
	cp := *s
	if len(s.EmphasisWords) > 0 {
		cp.EmphasisWords = make([]string, len(s.EmphasisWords))
		copy(cp.EmphasisWords, s.EmphasisWords)
	}
	if len(s.Pauses) > 0 {
		cp.Pauses = make([]Pause, len(s.Pauses))
		copy(cp.Pauses, s.Pauses)
	}
	return &cp
}

// Validate checks the segment invariants: non-negative duration, a known
// emotion, and emphasis words present verbatim in the text. Emphasis entries
// are only checked at attach time; later text mutation does not re-validate.
func (s *Segment) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("segment: missing id")
	}
	if s.Duration < 0 {
		return fmt.Errorf("segment %s: duration %.2f is negative", s.ID, s.Duration)
	}
	if _, ok := emotionSet[s.Emotion]; !ok {
		return fmt.Errorf("segment %s: unknown emotion %q", s.ID, s.Emotion)
	}
	for _, word := range s.EmphasisWords {
		if !strings.Contains(s.Text, word) {
			return fmt.Errorf("segment %s: emphasis word %q not present in text", s.ID, word)
		}
	}
	runes := s.RuneCount()
	for _, pause := range s.Pauses {
		if pause.Offset < 0 || pause.Offset > runes {
			return fmt.Errorf("segment %s: pause offset %d outside text", s.ID, pause.Offset)
		}
		if pause.Duration < 0 {
			return fmt.Errorf("segment %s: pause duration %.2f is negative", s.ID, pause.Duration)
		}
	}
	return nil
}
