package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "TUBENOTES_CONFIG"

// Config is built once at startup and is read-only afterwards
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Translator TranslatorConfig `yaml:"translator"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Artifacts  ArtifactConfig   `yaml:"artifacts"`
	Kafka      KafkaConfig      `yaml:"kafka"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// GeneratorConfig selects and configures the generation service
type GeneratorConfig struct {
	Backend      string `yaml:"backend"`
	GoogleAPIKey string `yaml:"googleApiKey"`
	GeminiModel  string `yaml:"geminiModel"`
	CohereAPIKey string `yaml:"cohereApiKey"`
	CohereModel  string `yaml:"cohereModel"`
}

// TranslatorConfig selects and configures the translation service
type TranslatorConfig struct {
	Backend         string `yaml:"backend"`
	Endpoint        string `yaml:"endpoint"`
	CloudAPIKey     string `yaml:"cloudApiKey"`
	CredentialsFile string `yaml:"credentialsFile"`
}

type YouTubeConfig struct {
	DataAPIKey        string   `yaml:"dataApiKey"`
	Languages         []string `yaml:"languages"`
	RequestsPerSecond float64  `yaml:"requestsPerSecond"`
}

// ArtifactConfig selects where summary.txt is kept for download
type ArtifactConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
	S3      S3Config      `yaml:"s3"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	UsePathStyle bool   `yaml:"usePathStyle"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Load reads .env (if present), an optional YAML file named by TUBENOTES_CONFIG,
// then applies environment overrides on top of defaults.
func Load() (Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			RequestTimeout: DefaultRequestTimeout,
		},
		Log: LogConfig{Level: "info"},
		Generator: GeneratorConfig{
			Backend:     GeneratorGemini,
			GeminiModel: DefaultGeminiModel,
			CohereModel: DefaultCohereModel,
		},
		Translator: TranslatorConfig{
			Backend:  TranslatorWeb,
			Endpoint: DefaultTranslateEndpoint,
		},
		YouTube: YouTubeConfig{
			Languages:         []string{DefaultTranscriptLanguage},
			RequestsPerSecond: DefaultYouTubeRPS,
		},
		Artifacts: ArtifactConfig{
			Backend: StoreMemory,
			TTL:     DefaultArtifactTTL,
			Redis:   RedisConfig{Addr: DefaultRedisAddr},
		},
		Kafka: KafkaConfig{Topic: DefaultKafkaTopic},
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setList(&c.Server.AllowedOrigins, "CORS_ORIGINS")
	if err := setSeconds(&c.Server.RequestTimeout, "REQUEST_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	setString(&c.Log.Level, "LOG_LEVEL")

	setString(&c.Generator.Backend, "GENERATOR")
	setString(&c.Generator.GoogleAPIKey, "GOOGLE_API_KEY")
	setString(&c.Generator.GeminiModel, "GEMINI_MODEL")
	setString(&c.Generator.CohereAPIKey, "COHERE_API_KEY")
	setString(&c.Generator.CohereModel, "COHERE_MODEL")

	setString(&c.Translator.Backend, "TRANSLATOR")
	setString(&c.Translator.Endpoint, "TRANSLATE_ENDPOINT")
	setString(&c.Translator.CloudAPIKey, "GOOGLE_TRANSLATE_API_KEY")
	setString(&c.Translator.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")

	setString(&c.YouTube.DataAPIKey, "YOUTUBE_API_KEY")
	setList(&c.YouTube.Languages, "TRANSCRIPT_LANGUAGES")
	if v := strings.TrimSpace(os.Getenv("YOUTUBE_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse YOUTUBE_RPS: %w", err)
		}
		c.YouTube.RequestsPerSecond = rps
	}

	setString(&c.Artifacts.Backend, "ARTIFACT_STORE")
	if err := setSeconds(&c.Artifacts.TTL, "ARTIFACT_TTL_SECONDS"); err != nil {
		return err
	}
	setString(&c.Artifacts.Redis.Addr, "REDIS_ADDR")
	setString(&c.Artifacts.Redis.Password, "REDIS_PASS")
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		c.Artifacts.Redis.DB = db
	}
	setString(&c.Artifacts.S3.Bucket, "S3_BUCKET")
	setString(&c.Artifacts.S3.Prefix, "S3_PREFIX")
	setString(&c.Artifacts.S3.Region, "S3_REGION")
	setString(&c.Artifacts.S3.Profile, "S3_PROFILE")
	if v := strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")); v != "" {
		c.Artifacts.S3.UsePathStyle = strings.EqualFold(v, "true")
	}

	setList(&c.Kafka.Brokers, "KAFKA_BOOTSTRAP_SERVERS")
	setString(&c.Kafka.Topic, "KAFKA_TOPIC")
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = def.Server.RequestTimeout
	}
	if c.Generator.Backend == "" {
		c.Generator.Backend = def.Generator.Backend
	}
	if c.Generator.GeminiModel == "" {
		c.Generator.GeminiModel = def.Generator.GeminiModel
	}
	if c.Generator.CohereModel == "" {
		c.Generator.CohereModel = def.Generator.CohereModel
	}
	if c.Translator.Backend == "" {
		c.Translator.Backend = def.Translator.Backend
	}
	if c.Translator.Endpoint == "" {
		c.Translator.Endpoint = def.Translator.Endpoint
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = def.YouTube.Languages
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		c.YouTube.RequestsPerSecond = def.YouTube.RequestsPerSecond
	}
	if c.Artifacts.Backend == "" {
		c.Artifacts.Backend = def.Artifacts.Backend
	}
	if c.Artifacts.TTL <= 0 {
		c.Artifacts.TTL = def.Artifacts.TTL
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = def.Kafka.Topic
	}
}

// LogValue keeps secrets out of structured logs
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Server.Port),
		slog.String("generator", c.Generator.Backend),
		slog.Bool("google_api_key_set", c.Generator.GoogleAPIKey != ""),
		slog.String("translator", c.Translator.Backend),
		slog.String("artifacts", c.Artifacts.Backend),
		slog.Int("kafka_brokers", len(c.Kafka.Brokers)),
	)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func setSeconds(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if secs > 0 {
		*dst = time.Duration(secs) * time.Second
	}
	return nil
}
