package project

import (
	"os"
	"time"

	"github.com/google/uuid"

	"shortcast/internal/script"
)

// UploadMetadata carries everything the hosting upload collaborator needs.
type UploadMetadata struct {
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	CategoryID      string    `json:"category_id"`
	PrivacyStatus   string    `json:"privacy_status"`
	MadeForKids     bool      `json:"made_for_kids"`
	DefaultLanguage string    `json:"default_language"`
	ThumbnailPath   string    `json:"thumbnail_path,omitempty"`
	VideoID         string    `json:"video_id,omitempty"`
	VideoURL        string    `json:"video_url,omitempty"`
	UploadedAt      time.Time `json:"uploaded_at,omitzero"`
}

// Project owns a script plus the artifacts produced by each pipeline phase,
// and the status ledger that makes the pipeline resumable. At most one writer
// mutates a Project at a time; callers running phases in parallel serialize
// their writes back in.
type Project struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	ProductName    string            `json:"product_name"`
	LandingURL     string            `json:"landing_url,omitempty"`
	Status         Status            `json:"status"`
	Script         *script.Script    `json:"script,omitempty"`
	AudioClips     []*AudioClip      `json:"audio_clips,omitempty"`
	VideoClips     []*VideoClip      `json:"video_clips,omitempty"`
	FinalVideoPath string            `json:"final_video_path,omitempty"`
	Upload         UploadMetadata    `json:"upload"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// New creates a draft project for a product.
func New(name, productName string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		ProductName: productName,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// UpdateStatus records a new lifecycle status and stamps the modification
// time. It is a ledger write: it does not judge whether the transition is
// legal. Use UpdateStatusChecked for the strict mode.
func (p *Project) UpdateStatus(next Status) {
	p.Status = next
	p.touch()
}

// UpdateStatusChecked validates the transition against the forward graph
// before recording it.
func (p *Project) UpdateStatusChecked(next Status) error {
	if err := ValidateTransition(p.Status, next); err != nil {
		return err
	}
	p.UpdateStatus(next)
	return nil
}

// AddAudioClip appends an audio artifact reference.
func (p *Project) AddAudioClip(clip *AudioClip) {
	p.AudioClips = append(p.AudioClips, clip)
	p.touch()
}

// AddVideoClip appends a video artifact reference.
func (p *Project) AddVideoClip(clip *VideoClip) {
	p.VideoClips = append(p.VideoClips, clip)
	p.touch()
}

// GetAudioClip returns the audio clip with the given ID, or nil.
func (p *Project) GetAudioClip(clipID string) *AudioClip {
	for _, clip := range p.AudioClips {
		if clip.ID == clipID {
			return clip
		}
	}
	return nil
}

// GetVideoClip returns the video clip with the given ID, or nil.
func (p *Project) GetVideoClip(clipID string) *VideoClip {
	for _, clip := range p.VideoClips {
		if clip.ID == clipID {
			return clip
		}
	}
	return nil
}

// HasScript reports whether a script has been attached.
func (p *Project) HasScript() bool {
	return p.Script != nil
}

// HasFinalVideo reports whether the composed video exists on disk.
func (p *Project) HasFinalVideo() bool {
	if p.FinalVideoPath == "" {
		return false
	}
	info, err := os.Stat(p.FinalVideoPath)
	return err == nil && !info.IsDir()
}

// IsComplete reports whether the project reached the uploaded state.
func (p *Project) IsComplete() bool {
	return p.Status == StatusUploaded
}
