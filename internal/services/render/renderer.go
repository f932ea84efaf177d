// Package render drives ffmpeg and ffprobe to turn narration clips and
// visuals into the final vertical video.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"shortcast/internal/config"
	"shortcast/internal/services"
)

// Executor abstracts command execution for the renderer.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// commandExecutor executes commands using os/exec.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if ok := isExitError(err, &exitErr); ok && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
	}
	return out, err
}

func isExitError(err error, target **exec.ExitError) bool {
	e, ok := err.(*exec.ExitError)
	if ok {
		*target = e
	}
	return ok
}

// Renderer composes video clips and the final output with ffmpeg.
type Renderer struct {
	ffmpeg  string
	ffprobe string
	video   config.Video
	exec    Executor
}

// NewRenderer constructs a Renderer from config.
func NewRenderer(cfg *config.Config) *Renderer {
	return NewRendererWithExecutor(cfg, commandExecutor{})
}

// NewRendererWithExecutor allows injecting a custom executor for testing.
func NewRendererWithExecutor(cfg *config.Config, executor Executor) *Renderer {
	if executor == nil {
		executor = commandExecutor{}
	}
	return &Renderer{
		ffmpeg:  cfg.FFmpegBinary(),
		ffprobe: cfg.FFprobeBinary(),
		video:   cfg.Video,
		exec:    executor,
	}
}

// AudioDuration measures the real duration of an audio file in seconds.
func (r *Renderer) AudioDuration(ctx context.Context, path string) (float64, error) {
	out, err := r.exec.Run(ctx, r.ffprobe, []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	})
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "render", "probe duration",
			fmt.Sprintf("ffprobe failed for %s", path), err)
	}
	value := strings.TrimSpace(string(out))
	duration, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "render", "probe duration",
			fmt.Sprintf("unparseable ffprobe output %q for %s", value, path), err)
	}
	if duration < 0 {
		duration = 0
	}
	return duration, nil
}

// SegmentClip renders one narration beat into a video clip: a solid
// background with the narration text overlaid, muxed with the audio clip.
func (r *Renderer) SegmentClip(ctx context.Context, audioPath, text, outPath string, duration float64) error {
	if duration <= 0 {
		return services.Wrap(services.ErrValidation, "render", "segment clip", "non-positive duration", nil)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create clip directory: %w", err)
	}

	size := fmt.Sprintf("%dx%d", r.video.Width, r.video.Height)
	source := fmt.Sprintf("color=c=%s:s=%s:r=%d:d=%f", r.video.BackgroundColor, size, r.video.FPS, duration)
	drawtext := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=56:x=(w-text_w)/2:y=(h-text_h)/2:box=1:boxcolor=black@0.4:boxborderw=24",
		escapeDrawtext(text),
	)

	args := []string{
		"-y",
		"-f", "lavfi", "-i", source,
		"-i", audioPath,
		"-vf", drawtext,
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-shortest",
		outPath,
	}
	if _, err := r.exec.Run(ctx, r.ffmpeg, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "segment clip",
			fmt.Sprintf("ffmpeg failed for %s", outPath), err)
	}
	return nil
}

// Compose concatenates segment clips into the final video.
func (r *Renderer) Compose(ctx context.Context, clipPaths []string, outPath string) error {
	if len(clipPaths) == 0 {
		return services.Wrap(services.ErrValidation, "render", "compose", "no clips to compose", nil)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	listPath := outPath + ".clips.txt"
	var sb strings.Builder
	for _, clip := range clipPaths {
		fmt.Fprintf(&sb, "file '%s'\n", strings.ReplaceAll(clip, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	}
	if _, err := r.exec.Run(ctx, r.ffmpeg, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "compose",
			fmt.Sprintf("ffmpeg concat failed for %s", outPath), err)
	}
	return nil
}

// Thumbnail extracts a frame from the final video for the upload thumbnail.
func (r *Renderer) Thumbnail(ctx context.Context, videoPath, outPath string, atSeconds float64) error {
	if atSeconds < 0 {
		atSeconds = 0
	}
	args := []string{
		"-y",
		"-ss", strconv.FormatFloat(atSeconds, 'f', 2, 64),
		"-i", videoPath,
		"-frames:v", "1",
		outPath,
	}
	if _, err := r.exec.Run(ctx, r.ffmpeg, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "thumbnail",
			fmt.Sprintf("ffmpeg thumbnail failed for %s", videoPath), err)
	}
	return nil
}

// HealthCheck verifies the ffmpeg toolchain is on PATH.
func (r *Renderer) HealthCheck(ctx context.Context) error {
	for _, binary := range []string{r.ffmpeg, r.ffprobe} {
		if _, err := exec.LookPath(binary); err != nil {
			return services.Wrap(services.ErrConfiguration, "render", "health",
				fmt.Sprintf("%s not found on PATH", binary), err)
		}
	}
	return nil
}

func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return replacer.Replace(text)
}
