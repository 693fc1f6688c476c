package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(configPathEnv, "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, GeneratorGemini, cfg.Generator.Backend)
	assert.Equal(t, TranslatorWeb, cfg.Translator.Backend)
	assert.Equal(t, []string{"en"}, cfg.YouTube.Languages)
	assert.Equal(t, StoreMemory, cfg.Artifacts.Backend)
	assert.Equal(t, DefaultArtifactTTL, cfg.Artifacts.TTL)
	assert.Empty(t, cfg.Generator.GoogleAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_API_KEY", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TRANSCRIPT_LANGUAGES", "en, de")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "k1:9092,k2:9092")
	t.Setenv("ARTIFACT_TTL_SECONDS", "60")
	t.Setenv("S3_USE_PATH_STYLE", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Generator.GoogleAPIKey)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"en", "de"}, cfg.YouTube.Languages)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.Artifacts.TTL)
	assert.True(t, cfg.Artifacts.S3.UsePathStyle)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "tubenotes.yaml")
	raw := []byte(`
generator:
  backend: cohere
  cohereModel: command-r-plus
translator:
  backend: cloud
artifacts:
  backend: redis
  ttl: 90s
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv("COHERE_MODEL", "")
	t.Setenv("TRANSLATOR", "web")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, GeneratorCohere, cfg.Generator.Backend)
	assert.Equal(t, "command-r-plus", cfg.Generator.CohereModel)
	assert.Equal(t, TranslatorWeb, cfg.Translator.Backend, "env wins over file")
	assert.Equal(t, StoreRedis, cfg.Artifacts.Backend)
	assert.Equal(t, 90*time.Second, cfg.Artifacts.TTL)
	assert.Equal(t, DefaultGeminiModel, cfg.Generator.GeminiModel)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(configPathEnv, "/does/not/exist.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestLogValueHidesSecrets(t *testing.T) {
	cfg := Default()
	cfg.Generator.GoogleAPIKey = "google-secret"
	cfg.Generator.CohereAPIKey = "cohere-secret"
	cfg.Translator.CloudAPIKey = "translate-secret"
	cfg.YouTube.DataAPIKey = "youtube-secret"
	cfg.Artifacts.Redis.Password = "redis-secret"

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("configuration loaded", slog.Any("config", cfg))

	out := buf.String()
	for _, secret := range []string{"google-secret", "cohere-secret", "translate-secret", "youtube-secret", "redis-secret"} {
		assert.NotContains(t, out, secret)
	}
	assert.Contains(t, out, "config.google_api_key_set=true")
	assert.Contains(t, out, "config.port="+DefaultPort)
}
