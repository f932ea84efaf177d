package script

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Style names the requested register of a generated script.
type Style string

const (
	StyleHumorous     Style = "humorous"
	StyleEducational  Style = "educational"
	StyleStorytelling Style = "storytelling"
	StyleComparison   Style = "comparison"
	StyleReview       Style = "review"
	StyleDramatic     Style = "dramatic"
	StyleCasual       Style = "casual"
	StyleProfessional Style = "professional"
)

var allStyles = []Style{
	StyleHumorous,
	StyleEducational,
	StyleStorytelling,
	StyleComparison,
	StyleReview,
	StyleDramatic,
	StyleCasual,
	StyleProfessional,
}

var styleSet = func() map[Style]struct{} {
	set := make(map[Style]struct{}, len(allStyles))
	for _, style := range allStyles {
		set[style] = struct{}{}
	}
	return set
}()

// AllStyles returns the known script styles.
func AllStyles() []Style {
	cp := make([]Style, len(allStyles))
	copy(cp, allStyles)
	return cp
}

// ParseStyle converts a string into a known Style. Empty input maps to
// humorous, the generator default.
func ParseStyle(value string) (Style, bool) {
	normalized := Style(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return StyleHumorous, true
	}
	_, ok := styleSet[normalized]
	return normalized, ok
}

// Script is the ordered sequence of segments plus project-level metadata.
// Segment order is playback order.
type Script struct {
	ID          string            `json:"id"`
	ProductName string            `json:"product_name"`
	LandingURL  string            `json:"landing_url,omitempty"`
	Style       Style             `json:"style"`
	Segments    []*Segment        `json:"segments"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Hashtags    []string          `json:"hashtags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// New builds an empty script for the given product.
func New(productName string, style Style) *Script {
	return &Script{
		ID:          uuid.NewString(),
		ProductName: productName,
		Style:       style,
		CreatedAt:   time.Now().UTC(),
	}
}

// TotalDuration sums segment durations in seconds.
func (s *Script) TotalDuration() float64 {
	var total float64
	for _, segment := range s.Segments {
		total += segment.Duration
	}
	return total
}

// TotalWordCount sums segment word counts.
func (s *Script) TotalWordCount() int {
	var total int
	for _, segment := range s.Segments {
		total += segment.WordCount()
	}
	return total
}

// FullText joins all segment texts in playback order.
func (s *Script) FullText() string {
	parts := make([]string, 0, len(s.Segments))
	for _, segment := range s.Segments {
		parts = append(parts, segment.Text)
	}
	return strings.Join(parts, " ")
}

// AddSegment appends a segment to the script.
func (s *Script) AddSegment(segment *Segment) {
	s.Segments = append(s.Segments, segment)
}

// RemoveSegment removes a segment by ID and reports whether one was removed.
func (s *Script) RemoveSegment(segmentID string) bool {
	kept := s.Segments[:0]
	removed := false
	for _, segment := range s.Segments {
		if segment.ID == segmentID {
			removed = true
			continue
		}
		kept = append(kept, segment)
	}
	s.Segments = kept
	return removed
}

// GetSegment returns the segment with the given ID, or nil.
func (s *Script) GetSegment(segmentID string) *Segment {
	for _, segment := range s.Segments {
		if segment.ID == segmentID {
			return segment
		}
	}
	return nil
}

// ReorderSegments rearranges segments to match the given ID order. The ID
// list must be a permutation of the current segment IDs.
func (s *Script) ReorderSegments(segmentIDs []string) bool {
	if len(segmentIDs) != len(s.Segments) {
		return false
	}
	byID := make(map[string]*Segment, len(s.Segments))
	for _, segment := range s.Segments {
		byID[segment.ID] = segment
	}
	reordered := make([]*Segment, 0, len(segmentIDs))
	for _, id := range segmentIDs {
		segment, ok := byID[id]
		if !ok {
			return false
		}
		reordered = append(reordered, segment)
	}
	s.Segments = reordered
	return true
}

// Clone returns a deep copy of the script.
func (s *Script) Clone() *Script {
	cp := *s
	if len(s.Segments) > 0 {
		cp.Segments = make([]*Segment, len(s.Segments))
		for i, segment := range s.Segments {
			cp.Segments[i] = segment.Clone()
		}
	}
	cp.Tags = cloneStrings(s.Tags)
	cp.Hashtags = cloneStrings(s.Hashtags)
	if len(s.Metadata) > 0 {
		cp.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

// Validate checks script invariants: unique segment IDs and per-segment
// validity.
func (s *Script) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("script: missing id")
	}
	seen := make(map[string]struct{}, len(s.Segments))
	for _, segment := range s.Segments {
		if err := segment.Validate(); err != nil {
			return err
		}
		if _, dup := seen[segment.ID]; dup {
			return fmt.Errorf("script %s: duplicate segment id %s", s.ID, segment.ID)
		}
		seen[segment.ID] = struct{}{}
	}
	return nil
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	cp := make([]string, len(values))
	copy(cp, values)
	return cp
}
