package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"shortcast/internal/timing"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScript(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScript() error {
	if !timing.KnownPreset(c.Script.ReadingSpeed) {
		presets := make([]string, 0, len(timing.ReadingSpeeds()))
		for name := range timing.ReadingSpeeds() {
			presets = append(presets, name)
		}
		sort.Strings(presets)
		return fmt.Errorf("script.reading_speed %q is not a known preset (one of %s)",
			c.Script.ReadingSpeed, strings.Join(presets, ", "))
	}
	if _, err := language.Parse(c.Script.Language); err != nil {
		return fmt.Errorf("script.language %q is not a valid language tag: %w", c.Script.Language, err)
	}
	if c.Script.MaxSegmentDuration > c.Script.MaxTotalDuration {
		return errors.New("script.max_segment_duration must not exceed script.max_total_duration")
	}
	return nil
}

func (c *Config) validateTTS() error {
	switch c.TTS.Provider {
	case "google", "azure":
	default:
		return fmt.Errorf("tts.provider %q is not supported (google or azure)", c.TTS.Provider)
	}
	if c.TTS.Provider == "azure" && strings.TrimSpace(c.TTS.AzureRegion) == "" {
		return errors.New("tts.azure_region must be set when tts.provider is azure (or set AZURE_SPEECH_REGION)")
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.Format {
	case "mp4", "webm", "mov":
	default:
		return fmt.Errorf("video.format %q is not supported (mp4, webm, or mov)", c.Video.Format)
	}
	return nil
}

func (c *Config) validateUpload() error {
	switch c.Upload.PrivacyStatus {
	case "public", "private", "unlisted":
	default:
		return fmt.Errorf("upload.privacy_status %q is not valid (public, private, or unlisted)", c.Upload.PrivacyStatus)
	}
	if c.Upload.Enabled {
		if strings.TrimSpace(c.Upload.ClientSecretsFile) == "" {
			return errors.New("upload.client_secrets_file must be set when upload.enabled is true")
		}
		if strings.TrimSpace(c.Upload.TokenFile) == "" {
			return errors.New("upload.token_file must be set when upload.enabled is true")
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
