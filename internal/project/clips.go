package project

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// AudioSettings records the synthesis parameters a clip was rendered with.
type AudioSettings struct {
	Provider      string  `json:"provider"`
	LanguageCode  string  `json:"language_code"`
	VoiceName     string  `json:"voice_name"`
	SpeakingRate  float64 `json:"speaking_rate"`
	Pitch         float64 `json:"pitch"`
	VolumeGainDB  float64 `json:"volume_gain_db"`
	AudioEncoding string  `json:"audio_encoding"`
	SampleRateHz  int     `json:"sample_rate_hz"`
}

// AudioClip references one synthesized narration file and its actual rendered
// duration as reported by the synthesis collaborator.
type AudioClip struct {
	ID        string        `json:"id"`
	SegmentID string        `json:"segment_id"`
	Text      string        `json:"text"`
	FilePath  string        `json:"file_path,omitempty"`
	Duration  float64       `json:"duration"`
	Settings  AudioSettings `json:"settings"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewAudioClip builds a clip reference for a segment.
func NewAudioClip(segmentID, text, filePath string, duration float64) *AudioClip {
	return &AudioClip{
		ID:        uuid.NewString(),
		SegmentID: segmentID,
		Text:      text,
		FilePath:  filePath,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}
}

// Exists reports whether the referenced audio file is present on disk.
func (c *AudioClip) Exists() bool {
	if c.FilePath == "" {
		return false
	}
	info, err := os.Stat(c.FilePath)
	return err == nil && !info.IsDir()
}

// VisualElement is one visual building block of a video clip. Content and
// styling are opaque hints for the renderer.
type VisualElement struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	FilePath  string  `json:"file_path,omitempty"`
	Content   string  `json:"content,omitempty"`
	Duration  float64 `json:"duration"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// VideoClip ties a script segment, its audio clip, and the visual elements
// rendered for it.
type VideoClip struct {
	ID             string          `json:"id"`
	SegmentID      string          `json:"segment_id"`
	AudioClipID    string          `json:"audio_clip_id,omitempty"`
	VisualElements []VisualElement `json:"visual_elements,omitempty"`
	Duration       float64         `json:"duration"`
	FilePath       string          `json:"file_path,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewVideoClip builds a clip reference for a segment.
func NewVideoClip(segmentID, audioClipID string, duration float64) *VideoClip {
	return &VideoClip{
		ID:          uuid.NewString(),
		SegmentID:   segmentID,
		AudioClipID: audioClipID,
		Duration:    duration,
		CreatedAt:   time.Now().UTC(),
	}
}

// Exists reports whether the referenced video file is present on disk.
func (c *VideoClip) Exists() bool {
	if c.FilePath == "" {
		return false
	}
	info, err := os.Stat(c.FilePath)
	return err == nil && !info.IsDir()
}
