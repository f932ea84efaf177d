package config

const (
	defaultOutputDir = "~/.local/share/shortcast/output"
	defaultLogDir    = "~/.local/share/shortcast/logs"
	defaultStateDir  = "~/.local/share/shortcast/state"

	defaultReadingSpeed       = "normal"
	defaultMaxSegmentDuration = 15.0
	defaultMaxTotalDuration   = 60.0
	defaultAdjustTolerance    = 2.0
	defaultScriptLanguage     = "ja"

	defaultGeneratorBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultGeneratorModel          = "google/gemini-3-flash-preview"
	defaultGeneratorTimeoutSeconds = 120

	defaultTTSProvider       = "google"
	defaultTTSLanguageCode   = "ja-JP"
	defaultTTSVoiceName      = "ja-JP-Neural2-B"
	defaultTTSConcurrency    = 4
	defaultTTSTimeoutSeconds = 60
	defaultTTSSampleRateHz   = 24000

	defaultVideoWidth      = 1080
	defaultVideoHeight     = 1920
	defaultVideoFPS        = 30
	defaultVideoFormat     = "mp4"
	defaultVideoBackground = "black"

	defaultUploadPrivacyStatus   = "private"
	defaultUploadCategoryID      = "22"
	defaultUploadClientSecrets   = "~/.config/shortcast/client_secrets.json"
	defaultUploadTokenFile       = "~/.config/shortcast/youtube_token.json"
	defaultUploadDefaultLanguage = "ja"

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Script: Script{
			ReadingSpeed:           defaultReadingSpeed,
			MaxSegmentDuration:     defaultMaxSegmentDuration,
			MaxTotalDuration:       defaultMaxTotalDuration,
			AdjustToleranceSeconds: defaultAdjustTolerance,
			Language:               defaultScriptLanguage,
		},
		Generator: Generator{
			BaseURL:        defaultGeneratorBaseURL,
			Model:          defaultGeneratorModel,
			TimeoutSeconds: defaultGeneratorTimeoutSeconds,
		},
		TTS: TTS{
			Provider:       defaultTTSProvider,
			LanguageCode:   defaultTTSLanguageCode,
			VoiceName:      defaultTTSVoiceName,
			Concurrency:    defaultTTSConcurrency,
			TimeoutSeconds: defaultTTSTimeoutSeconds,
			SampleRateHz:   defaultTTSSampleRateHz,
		},
		Video: Video{
			Width:           defaultVideoWidth,
			Height:          defaultVideoHeight,
			FPS:             defaultVideoFPS,
			Format:          defaultVideoFormat,
			BackgroundColor: defaultVideoBackground,
		},
		Upload: Upload{
			ClientSecretsFile: defaultUploadClientSecrets,
			TokenFile:         defaultUploadTokenFile,
			PrivacyStatus:     defaultUploadPrivacyStatus,
			CategoryID:        defaultUploadCategoryID,
			DefaultLanguage:   defaultUploadDefaultLanguage,
		},
		Workflow: Workflow{
			StrictTransitions: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Phases:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
