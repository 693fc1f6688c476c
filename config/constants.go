package config

import "time"

// Server Constants
const (
	// DefaultPort is the HTTP API listen port
	DefaultPort = "8080"

	// DefaultRequestTimeout bounds a whole pipeline run started from the API or CLI
	DefaultRequestTimeout = 3 * time.Minute
)

// Generation Constants
const (
	// GeneratorGemini selects the Google Gemini backend
	GeneratorGemini = "gemini"

	// GeneratorCohere selects the Cohere chat backend
	GeneratorCohere = "cohere"

	// DefaultGeminiModel is the model name passed to generateContent
	DefaultGeminiModel = "gemini-1.5-flash"

	// DefaultCohereModel is the model used for Cohere chat
	DefaultCohereModel = "command-r"
)

// Translation Constants
const (
	// TranslatorWeb selects the keyless Google Translate web endpoint
	TranslatorWeb = "web"

	// TranslatorCloud selects Cloud Translation v2
	TranslatorCloud = "cloud"

	// DefaultTranslateEndpoint is the web endpoint used by TranslatorWeb
	DefaultTranslateEndpoint = "https://translate.googleapis.com/translate_a/single"
)

// YouTube Constants
const (
	// DefaultTranscriptLanguage is the caption language requested when none is configured
	DefaultTranscriptLanguage = "en"

	// DefaultYouTubeRPS paces outbound requests to YouTube
	DefaultYouTubeRPS = 2.0
)

// Artifact Constants
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreS3     = "s3"

	// DefaultArtifactTTL is how long a summary stays downloadable
	DefaultArtifactTTL = 24 * time.Hour

	// DefaultRedisAddr is used when REDIS_ADDR is unset
	DefaultRedisAddr = "localhost:6379"
)

// Kafka Constants
const (
	// DefaultKafkaTopic receives one event per finished run
	DefaultKafkaTopic = "summary-runs"
)
