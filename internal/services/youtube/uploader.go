// Package youtube uploads the composed video through the YouTube Data API.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"shortcast/internal/config"
	"shortcast/internal/project"
	"shortcast/internal/services"
)

// Result describes a completed upload.
type Result struct {
	VideoID    string
	VideoURL   string
	UploadedAt time.Time
}

// api is the slice of the Data API the uploader uses. Tests swap it out.
type api interface {
	insertVideo(ctx context.Context, video *youtubeapi.Video, media io.Reader) (*youtubeapi.Video, error)
	setThumbnail(ctx context.Context, videoID string, media io.Reader) error
}

// Uploader publishes projects to YouTube using stored OAuth credentials.
type Uploader struct {
	cfg config.Upload
	api api
}

// New creates an Uploader from the upload configuration.
func New(cfg config.Upload) *Uploader {
	return &Uploader{cfg: cfg}
}

// Upload sends the project's final video to YouTube and returns the hosted
// video identity. The video metadata comes from the project, not the config,
// so re-uploads after edits publish what the project records.
func (u *Uploader) Upload(ctx context.Context, p *project.Project) (*Result, error) {
	if p == nil || !p.HasFinalVideo() {
		return nil, services.Wrap(services.ErrValidation, "upload", "prepare", "project has no final video", nil)
	}

	client := u.api
	if client == nil {
		svc, err := u.newService(ctx)
		if err != nil {
			return nil, err
		}
		client = svc
	}

	meta := p.Upload
	video := &youtubeapi.Video{
		Snippet: &youtubeapi.VideoSnippet{
			Title:                meta.Title,
			Description:          meta.Description,
			Tags:                 meta.Tags,
			CategoryId:           meta.CategoryID,
			DefaultLanguage:      meta.DefaultLanguage,
			DefaultAudioLanguage: meta.DefaultLanguage,
		},
		Status: &youtubeapi.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: meta.MadeForKids,
		},
	}

	file, err := os.Open(p.FinalVideoPath)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "upload", "open video",
			fmt.Sprintf("final video missing at %s", p.FinalVideoPath), err)
	}
	defer file.Close()

	uploaded, err := client.insertVideo(ctx, video, file)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "upload", "insert video", "", err)
	}

	result := &Result{
		VideoID:    uploaded.Id,
		VideoURL:   fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id),
		UploadedAt: time.Now().UTC(),
	}

	if meta.ThumbnailPath != "" {
		thumb, err := os.Open(meta.ThumbnailPath)
		if err == nil {
			defer thumb.Close()
			if err := client.setThumbnail(ctx, result.VideoID, thumb); err != nil {
				return result, services.Wrap(services.ErrExternalTool, "upload", "set thumbnail", "", err)
			}
		}
	}

	return result, nil
}

// newService builds the Data API client from the configured client secrets
// and token files.
func (u *Uploader) newService(ctx context.Context) (*dataAPI, error) {
	secretsPath, err := config.ExpandPath(u.cfg.ClientSecretsFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load credentials",
			fmt.Sprintf("client secrets path %s", u.cfg.ClientSecretsFile), err)
	}
	secrets, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load credentials",
			fmt.Sprintf("client secrets file %s", u.cfg.ClientSecretsFile), err)
	}
	oauthCfg, err := google.ConfigFromJSON(secrets, youtubeapi.YoutubeUploadScope)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load credentials",
			"unreadable client secrets", err)
	}

	tokenPath, err := config.ExpandPath(u.cfg.TokenFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load token",
			fmt.Sprintf("token path %s", u.cfg.TokenFile), err)
	}
	token, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	svc, err := youtubeapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "create client", "", err)
	}
	return &dataAPI{service: svc}, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load token",
			fmt.Sprintf("token file %s; run the authorization flow first", path), err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upload", "load token",
			fmt.Sprintf("unparseable token file %s", path), err)
	}
	return &token, nil
}

// SaveToken writes a token to disk after the authorization flow completes.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// dataAPI adapts the generated client to the api interface.
type dataAPI struct {
	service *youtubeapi.Service
}

func (d *dataAPI) insertVideo(ctx context.Context, video *youtubeapi.Video, media io.Reader) (*youtubeapi.Video, error) {
	call := d.service.Videos.Insert([]string{"snippet", "status"}, video)
	call.Media(media)
	return call.Context(ctx).Do()
}

func (d *dataAPI) setThumbnail(ctx context.Context, videoID string, media io.Reader) error {
	call := d.service.Thumbnails.Set(videoID)
	call.Media(media)
	_, err := call.Context(ctx).Do()
	return err
}

// BuildMetadata derives upload metadata from the project script and config
// defaults. Hashtags ride in the description tail the way Shorts expect.
func BuildMetadata(p *project.Project, cfg config.Upload) project.UploadMetadata {
	meta := project.UploadMetadata{
		Title:           p.ProductName,
		CategoryID:      cfg.CategoryID,
		PrivacyStatus:   cfg.PrivacyStatus,
		MadeForKids:     cfg.MadeForKids,
		DefaultLanguage: cfg.DefaultLanguage,
	}
	if p.Script == nil {
		return meta
	}
	if title := strings.TrimSpace(p.Script.Title); title != "" {
		meta.Title = title
	}
	meta.Description = strings.TrimSpace(p.Script.Description)
	if p.LandingURL != "" {
		if meta.Description != "" {
			meta.Description += "\n\n"
		}
		meta.Description += p.LandingURL
	}
	if tags := formatHashtags(p.Script.Hashtags); tags != "" {
		if meta.Description != "" {
			meta.Description += "\n\n"
		}
		meta.Description += tags
	}
	meta.Tags = append([]string(nil), p.Script.Tags...)
	return meta
}

func formatHashtags(hashtags []string) string {
	parts := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		parts = append(parts, tag)
	}
	return strings.Join(parts, " ")
}
