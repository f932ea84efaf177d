package timing

import (
	"math"
	"sort"

	"shortcast/internal/script"
)

// Summary aggregates read-only statistics over a processed script.
type Summary struct {
	ProductName            string         `json:"product_name"`
	Title                  string         `json:"title"`
	Style                  script.Style   `json:"style"`
	SegmentCount           int            `json:"segment_count"`
	TotalDuration          float64        `json:"total_duration"`
	AverageSegmentDuration float64        `json:"average_segment_duration"`
	TotalWords             int            `json:"total_words"`
	EmotionsUsed           []script.Emotion `json:"emotions_used"`
	HasEmphasis            bool           `json:"has_emphasis"`
	Tags                   []string       `json:"tags,omitempty"`
	Hashtags               []string       `json:"hashtags,omitempty"`
}

// Summarize computes script statistics. Emotions are sorted so the output is
// deterministic.
func Summarize(s *script.Script) Summary {
	summary := Summary{
		ProductName:  s.ProductName,
		Title:        s.Title,
		Style:        s.Style,
		SegmentCount: len(s.Segments),
		TotalWords:   s.TotalWordCount(),
		Tags:         append([]string(nil), s.Tags...),
		Hashtags:     append([]string(nil), s.Hashtags...),
	}
	summary.TotalDuration = roundTenth(s.TotalDuration())
	if len(s.Segments) > 0 {
		summary.AverageSegmentDuration = roundTenth(s.TotalDuration() / float64(len(s.Segments)))
	}

	seen := make(map[script.Emotion]struct{})
	for _, segment := range s.Segments {
		if len(segment.EmphasisWords) > 0 {
			summary.HasEmphasis = true
		}
		if _, dup := seen[segment.Emotion]; dup {
			continue
		}
		seen[segment.Emotion] = struct{}{}
		summary.EmotionsUsed = append(summary.EmotionsUsed, segment.Emotion)
	}
	sort.Slice(summary.EmotionsUsed, func(a, b int) bool {
		return summary.EmotionsUsed[a] < summary.EmotionsUsed[b]
	})
	return summary
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
