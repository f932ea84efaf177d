package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScript()
	c.normalizeGenerator()
	c.normalizeTTS()
	c.normalizeVideo()
	if err := c.normalizeUpload(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScript() {
	c.Script.ReadingSpeed = strings.ToLower(strings.TrimSpace(c.Script.ReadingSpeed))
	if c.Script.ReadingSpeed == "" {
		c.Script.ReadingSpeed = defaultReadingSpeed
	}
	c.Script.Language = strings.TrimSpace(c.Script.Language)
	if c.Script.Language == "" {
		c.Script.Language = defaultScriptLanguage
	}
	if c.Script.MaxSegmentDuration <= 0 {
		c.Script.MaxSegmentDuration = defaultMaxSegmentDuration
	}
	if c.Script.MaxTotalDuration <= 0 {
		c.Script.MaxTotalDuration = defaultMaxTotalDuration
	}
	if c.Script.AdjustToleranceSeconds <= 0 {
		c.Script.AdjustToleranceSeconds = defaultAdjustTolerance
	}
}

func (c *Config) normalizeGenerator() {
	c.Generator.BaseURL = strings.TrimSpace(c.Generator.BaseURL)
	if c.Generator.BaseURL == "" {
		c.Generator.BaseURL = defaultGeneratorBaseURL
	}
	c.Generator.Model = strings.TrimSpace(c.Generator.Model)
	if c.Generator.Model == "" {
		c.Generator.Model = defaultGeneratorModel
	}
	if c.Generator.TimeoutSeconds <= 0 {
		c.Generator.TimeoutSeconds = defaultGeneratorTimeoutSeconds
	}
	c.Generator.APIKey = strings.TrimSpace(c.Generator.APIKey)
	if c.Generator.APIKey == "" {
		if value, ok := os.LookupEnv("SHORTCAST_GENERATOR_API_KEY"); ok {
			c.Generator.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Generator.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.Provider = strings.ToLower(strings.TrimSpace(c.TTS.Provider))
	if c.TTS.Provider == "" {
		c.TTS.Provider = defaultTTSProvider
	}
	c.TTS.LanguageCode = strings.TrimSpace(c.TTS.LanguageCode)
	if c.TTS.LanguageCode == "" {
		c.TTS.LanguageCode = defaultTTSLanguageCode
	}
	c.TTS.VoiceName = strings.TrimSpace(c.TTS.VoiceName)
	if c.TTS.VoiceName == "" {
		c.TTS.VoiceName = defaultTTSVoiceName
	}
	if c.TTS.Concurrency <= 0 {
		c.TTS.Concurrency = defaultTTSConcurrency
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
	if c.TTS.SampleRateHz <= 0 {
		c.TTS.SampleRateHz = defaultTTSSampleRateHz
	}
	c.TTS.GoogleAPIKey = strings.TrimSpace(c.TTS.GoogleAPIKey)
	if c.TTS.GoogleAPIKey == "" {
		if value, ok := os.LookupEnv("GOOGLE_TTS_API_KEY"); ok {
			c.TTS.GoogleAPIKey = strings.TrimSpace(value)
		}
	}
	c.TTS.AzureSubscriptionKey = strings.TrimSpace(c.TTS.AzureSubscriptionKey)
	if c.TTS.AzureSubscriptionKey == "" {
		if value, ok := os.LookupEnv("AZURE_SPEECH_KEY"); ok {
			c.TTS.AzureSubscriptionKey = strings.TrimSpace(value)
		}
	}
	c.TTS.AzureRegion = strings.TrimSpace(c.TTS.AzureRegion)
	if c.TTS.AzureRegion == "" {
		if value, ok := os.LookupEnv("AZURE_SPEECH_REGION"); ok {
			c.TTS.AzureRegion = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeVideo() {
	if c.Video.Width <= 0 {
		c.Video.Width = defaultVideoWidth
	}
	if c.Video.Height <= 0 {
		c.Video.Height = defaultVideoHeight
	}
	if c.Video.FPS <= 0 {
		c.Video.FPS = defaultVideoFPS
	}
	c.Video.Format = strings.ToLower(strings.TrimSpace(c.Video.Format))
	if c.Video.Format == "" {
		c.Video.Format = defaultVideoFormat
	}
	c.Video.BackgroundColor = strings.TrimSpace(c.Video.BackgroundColor)
	if c.Video.BackgroundColor == "" {
		c.Video.BackgroundColor = defaultVideoBackground
	}
}

func (c *Config) normalizeUpload() error {
	var err error
	if strings.TrimSpace(c.Upload.ClientSecretsFile) == "" {
		c.Upload.ClientSecretsFile = defaultUploadClientSecrets
	}
	if c.Upload.ClientSecretsFile, err = expandPath(c.Upload.ClientSecretsFile); err != nil {
		return fmt.Errorf("upload.client_secrets_file: %w", err)
	}
	if strings.TrimSpace(c.Upload.TokenFile) == "" {
		c.Upload.TokenFile = defaultUploadTokenFile
	}
	if c.Upload.TokenFile, err = expandPath(c.Upload.TokenFile); err != nil {
		return fmt.Errorf("upload.token_file: %w", err)
	}
	c.Upload.PrivacyStatus = strings.ToLower(strings.TrimSpace(c.Upload.PrivacyStatus))
	if c.Upload.PrivacyStatus == "" {
		c.Upload.PrivacyStatus = defaultUploadPrivacyStatus
	}
	c.Upload.CategoryID = strings.TrimSpace(c.Upload.CategoryID)
	if c.Upload.CategoryID == "" {
		c.Upload.CategoryID = defaultUploadCategoryID
	}
	c.Upload.DefaultLanguage = strings.TrimSpace(c.Upload.DefaultLanguage)
	if c.Upload.DefaultLanguage == "" {
		c.Upload.DefaultLanguage = defaultUploadDefaultLanguage
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
