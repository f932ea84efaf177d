// Package notifications sends ntfy push notifications for pipeline phases.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shortcast/internal/config"
)

const userAgent = "Shortcast-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyScriptGenerated(ctx context.Context, productName string, segments int) error
	NotifyAudioGenerated(ctx context.Context, productName string, clips int) error
	NotifyVisualsGenerated(ctx context.Context, productName string) error
	NotifyVideoComposed(ctx context.Context, productName, finalFile string) error
	NotifyUploaded(ctx context.Context, productName, videoURL string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		phases:   cfg.Notifications.Phases,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	phases   bool
	errors   bool
}

func (n *ntfyService) NotifyScriptGenerated(ctx context.Context, productName string, segments int) error {
	if !n.phases {
		return nil
	}
	data := payload{
		title:   "Shortcast - Script Ready",
		message: fmt.Sprintf("Script generated for %s (%d segments)", strings.TrimSpace(productName), segments),
		tags:    []string{"shortcast", "script", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAudioGenerated(ctx context.Context, productName string, clips int) error {
	if !n.phases {
		return nil
	}
	data := payload{
		title:   "Shortcast - Narration Ready",
		message: fmt.Sprintf("Synthesized %d audio clips for %s", clips, strings.TrimSpace(productName)),
		tags:    []string{"shortcast", "audio", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyVisualsGenerated(ctx context.Context, productName string) error {
	if !n.phases {
		return nil
	}
	data := payload{
		title:   "Shortcast - Visuals Ready",
		message: fmt.Sprintf("Visuals prepared for %s", strings.TrimSpace(productName)),
		tags:    []string{"shortcast", "visuals", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyVideoComposed(ctx context.Context, productName, finalFile string) error {
	if !n.phases {
		return nil
	}
	message := fmt.Sprintf("Video composed for %s", strings.TrimSpace(productName))
	if finalFile = strings.TrimSpace(finalFile); finalFile != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, finalFile)
	}
	data := payload{
		title:   "Shortcast - Video Composed",
		message: message,
		tags:    []string{"shortcast", "video", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyUploaded(ctx context.Context, productName, videoURL string) error {
	message := fmt.Sprintf("Published: %s", strings.TrimSpace(productName))
	if videoURL = strings.TrimSpace(videoURL); videoURL != "" {
		message = fmt.Sprintf("%s\n%s", message, videoURL)
	}
	data := payload{
		title:    "Shortcast - Uploaded",
		message:  message,
		tags:     []string{"shortcast", "upload", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shortcast - Error",
		message:  builder.String(),
		tags:     []string{"shortcast", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shortcast - Test",
		message:  "Notification system test",
		tags:     []string{"shortcast", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScriptGenerated(context.Context, string, int) error { return nil }
func (noopService) NotifyAudioGenerated(context.Context, string, int) error  { return nil }
func (noopService) NotifyVisualsGenerated(context.Context, string) error     { return nil }
func (noopService) NotifyVideoComposed(context.Context, string, string) error {
	return nil
}
func (noopService) NotifyUploaded(context.Context, string, string) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error     { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
