package youtube

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	youtubeapi "google.golang.org/api/youtube/v3"

	"shortcast/internal/config"
	"shortcast/internal/project"
	"shortcast/internal/script"
	"shortcast/internal/services"
)

type fakeAPI struct {
	inserted    *youtubeapi.Video
	mediaBytes  int
	thumbnailID string
	insertErr   error
}

func (f *fakeAPI) insertVideo(_ context.Context, video *youtubeapi.Video, media io.Reader) (*youtubeapi.Video, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = video
	data, _ := io.ReadAll(media)
	f.mediaBytes = len(data)
	return &youtubeapi.Video{Id: "vid-123"}, nil
}

func (f *fakeAPI) setThumbnail(_ context.Context, videoID string, _ io.Reader) error {
	f.thumbnailID = videoID
	return nil
}

func uploadableProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New("AquaBottle launch", "AquaBottle")
	videoPath := filepath.Join(t.TempDir(), "final.mp4")
	if err := os.WriteFile(videoPath, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.FinalVideoPath = videoPath
	p.Upload = project.UploadMetadata{
		Title:           "AquaBottle in 60 seconds",
		Description:     "Stay hydrated.",
		Tags:            []string{"water", "bottle"},
		CategoryID:      "22",
		PrivacyStatus:   "private",
		DefaultLanguage: "ja",
	}
	return p
}

func TestUploadSendsSnippetAndStatus(t *testing.T) {
	api := &fakeAPI{}
	u := &Uploader{api: api}
	p := uploadableProject(t)

	result, err := u.Upload(context.Background(), p)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.VideoID != "vid-123" {
		t.Fatalf("VideoID = %q", result.VideoID)
	}
	if result.VideoURL != "https://www.youtube.com/watch?v=vid-123" {
		t.Fatalf("VideoURL = %q", result.VideoURL)
	}
	if api.inserted.Snippet.Title != "AquaBottle in 60 seconds" {
		t.Fatalf("title = %q", api.inserted.Snippet.Title)
	}
	if api.inserted.Status.PrivacyStatus != "private" {
		t.Fatalf("privacy = %q", api.inserted.Status.PrivacyStatus)
	}
	if api.inserted.Snippet.DefaultAudioLanguage != "ja" {
		t.Fatalf("audio language = %q", api.inserted.Snippet.DefaultAudioLanguage)
	}
	if api.mediaBytes == 0 {
		t.Fatal("no media uploaded")
	}
	if result.UploadedAt.IsZero() {
		t.Fatal("UploadedAt not set")
	}
}

func TestUploadRequiresFinalVideo(t *testing.T) {
	u := &Uploader{api: &fakeAPI{}}
	p := project.New("demo", "Demo")

	_, err := u.Upload(context.Background(), p)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation marker", err)
	}
}

func TestUploadWrapsAPIFailure(t *testing.T) {
	u := &Uploader{api: &fakeAPI{insertErr: errors.New("quota exceeded")}}
	p := uploadableProject(t)

	_, err := u.Upload(context.Background(), p)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want external tool marker", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestUploadSetsThumbnailWhenPresent(t *testing.T) {
	api := &fakeAPI{}
	u := &Uploader{api: api}
	p := uploadableProject(t)
	thumbPath := filepath.Join(t.TempDir(), "thumb.jpg")
	if err := os.WriteFile(thumbPath, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	p.Upload.ThumbnailPath = thumbPath

	if _, err := u.Upload(context.Background(), p); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if api.thumbnailID != "vid-123" {
		t.Fatalf("thumbnail target = %q", api.thumbnailID)
	}
}

func TestBuildMetadataUsesScriptAndConfig(t *testing.T) {
	cfg := config.Upload{
		CategoryID:      "22",
		PrivacyStatus:   "unlisted",
		DefaultLanguage: "ja",
	}
	p := project.New("launch", "AquaBottle")
	p.LandingURL = "https://example.com/aqua"
	s := script.New("AquaBottle", script.StyleEducational)
	s.Title = "The bottle that chills itself"
	s.Description = "Meet AquaBottle."
	s.Tags = []string{"gadgets"}
	s.Hashtags = []string{"#shorts", "hydration"}
	p.Script = s

	meta := BuildMetadata(p, cfg)
	if meta.Title != "The bottle that chills itself" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.PrivacyStatus != "unlisted" || meta.CategoryID != "22" {
		t.Fatalf("config defaults not applied: %+v", meta)
	}
	if !strings.Contains(meta.Description, "https://example.com/aqua") {
		t.Fatalf("landing URL missing: %q", meta.Description)
	}
	if !strings.Contains(meta.Description, "#shorts #hydration") {
		t.Fatalf("hashtags missing: %q", meta.Description)
	}
}

func TestBuildMetadataFallsBackToProductName(t *testing.T) {
	meta := BuildMetadata(project.New("launch", "AquaBottle"), config.Upload{PrivacyStatus: "private"})
	if meta.Title != "AquaBottle" {
		t.Fatalf("title = %q", meta.Title)
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	u := New(config.Upload{
		ClientSecretsFile: filepath.Join(t.TempDir(), "missing.json"),
		TokenFile:         filepath.Join(t.TempDir(), "missing-token.json"),
	})
	_, err := u.newService(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration marker", err)
	}
}
