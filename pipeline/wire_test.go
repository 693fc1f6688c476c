package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubenotes/artifacts"
	"tubenotes/config"
	"tubenotes/summarizer"
	"tubenotes/translation"
)

func TestWireDefaults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps, cleanup, err := Wire(context.Background(), config.Default(), logger)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, deps.Transcripts)
	assert.IsType(t, &summarizer.Gemini{}, deps.Generator)
	assert.IsType(t, &translation.WebClient{}, deps.Translator)
	assert.IsType(t, &artifacts.MemoryStore{}, deps.Artifacts)
	assert.Nil(t, deps.Events)
}

func TestWireRejectsUnknownBackends(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Default()
	cfg.Translator.Backend = "carrier-pigeon"
	_, _, err := Wire(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "translator")

	cfg = config.Default()
	cfg.Artifacts.Backend = "floppy"
	_, _, err = Wire(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "artifact store")
}
