package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubenotes/artifacts"
	"tubenotes/summarizer"
	"tubenotes/types"
)

type fakeFetcher struct {
	calls      []types.VideoID
	transcript types.Transcript
	err        error
}

func (f *fakeFetcher) Fetch(_ context.Context, id types.VideoID) (types.Transcript, error) {
	f.calls = append(f.calls, id)
	return f.transcript, f.err
}

type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type translateCall struct {
	text string
	code string
}

type fakeTranslator struct {
	calls []translateCall
	err   error
}

func (f *fakeTranslator) Translate(_ context.Context, text, code string) (string, error) {
	f.calls = append(f.calls, translateCall{text: text, code: code})
	if f.err != nil {
		return "", f.err
	}
	return "[" + code + "] " + text, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []types.RunEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, ev types.RunEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

type harness struct {
	fetcher    *fakeFetcher
	generator  *fakeGenerator
	translator *fakeTranslator
	publisher  *fakePublisher
	store      *artifacts.MemoryStore
	runner     *Runner
}

func newHarness() *harness {
	h := &harness{
		fetcher: &fakeFetcher{transcript: types.Transcript{
			{Text: "a", Start: 0, Duration: 1},
			{Text: "b", Start: 1, Duration: 1},
			{Text: "c", Start: 2, Duration: 1},
		}},
		generator:  &fakeGenerator{reply: "- point"},
		translator: &fakeTranslator{},
		publisher:  &fakePublisher{},
		store:      artifacts.NewMemoryStore(0),
	}
	h.runner = NewRunner(Deps{
		Transcripts: h.fetcher,
		Generator:   h.generator,
		Translator:  h.translator,
		Artifacts:   h.store,
		Events:      h.publisher,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h
}

func french(t *testing.T) types.Language {
	t.Helper()
	lang, ok := types.LookupLanguage("French")
	require.True(t, ok)
	return lang
}

func TestSubmitURLExtractsIdentifier(t *testing.T) {
	cases := []struct {
		url  string
		want types.VideoID
	}{
		{"https://www.youtube.com/watch?v=abc123&t=5s", "abc123"},
		{"https://youtu.be/xyz789?si=1", "xyz789"},
	}

	for _, c := range cases {
		t.Run(c.url, func(t *testing.T) {
			run := newHarness().runner.NewRun()
			require.NoError(t, run.SubmitURL(c.url))

			snap := run.Snapshot()
			assert.Equal(t, types.StateIdentifierExtracted, snap.State)
			assert.Equal(t, c.want, snap.VideoID)
			assert.Equal(t, "http://img.youtube.com/vi/"+string(c.want)+"/0.jpg", snap.ThumbnailURL)
		})
	}
}

func TestInvalidURLNeverFetches(t *testing.T) {
	h := newHarness()

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://example.com/notyoutube",
		Language: types.DefaultLanguage,
	})
	require.Error(t, err)

	var parseErr *types.URLParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Invalid URL.", err.Error())
	assert.Equal(t, types.StateError, run.State())
	assert.Equal(t, "Invalid URL.", run.Snapshot().Error)
	assert.Empty(t, h.fetcher.calls)

	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, types.StateError, h.publisher.events[0].State)
}

func TestHappyPath(t *testing.T) {
	h := newHarness()

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:        "https://www.youtube.com/watch?v=abc123&t=5s",
		Difficulty: types.DifficultyHard,
		Language:   french(t),
	})
	require.NoError(t, err)

	assert.Equal(t, []types.VideoID{"abc123"}, h.fetcher.calls)

	require.Len(t, h.generator.prompts, 1)
	prompt := h.generator.prompts[0]
	assert.Equal(t, summarizer.BuildPrompt(types.DifficultyHard)+"a b c", prompt)
	assert.Contains(t, prompt, "advanced language")
	assert.NotContains(t, prompt, "simple, easy-to-understand")

	require.Len(t, h.translator.calls, 1)
	assert.Equal(t, translateCall{text: "- point", code: "fr"}, h.translator.calls[0])

	snap := run.Snapshot()
	assert.Equal(t, types.StateTranslatedReady, snap.State)
	assert.Equal(t, "[fr] - point", snap.Summary)
	assert.Equal(t, "fr", snap.Language)
	assert.Empty(t, snap.Error)

	artifact, ok := run.Artifact()
	require.True(t, ok)
	assert.Equal(t, types.NewArtifact("[fr] - point"), artifact)

	stored, err := h.store.Load(context.Background(), run.ID())
	require.NoError(t, err)
	assert.Equal(t, artifact, stored)

	require.Len(t, h.publisher.events, 1)
	ev := h.publisher.events[0]
	assert.Equal(t, run.ID(), ev.RunID)
	assert.Equal(t, types.StateTranslatedReady, ev.State)
	assert.Equal(t, len("[fr] - point"), ev.SummaryChars)
}

func TestEnglishStillCallsTranslator(t *testing.T) {
	h := newHarness()

	_, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://youtu.be/xyz789",
		Language: types.DefaultLanguage,
	})
	require.NoError(t, err)
	require.Len(t, h.translator.calls, 1)
	assert.Equal(t, "en", h.translator.calls[0].code)
}

func TestFetchFailureHaltsPipeline(t *testing.T) {
	h := newHarness()
	h.fetcher.err = errors.New("transcripts are disabled for this video")

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://youtu.be/xyz789",
		Language: french(t),
	})
	require.Error(t, err)

	var transcriptErr *types.TranscriptError
	require.ErrorAs(t, err, &transcriptErr)
	assert.Equal(t, types.VideoID("xyz789"), transcriptErr.VideoID)

	assert.Empty(t, h.generator.prompts)
	assert.Empty(t, h.translator.calls)

	snap := run.Snapshot()
	assert.Equal(t, types.StateError, snap.State)
	assert.Equal(t, "An error occurred while fetching the transcript: transcripts are disabled for this video", snap.Error)
	_, ok := run.Artifact()
	assert.False(t, ok)
}

func TestGenerationFailureSkipsTranslation(t *testing.T) {
	h := newHarness()
	h.generator.err = errors.New("API key not valid")

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://youtu.be/xyz789",
		Language: french(t),
	})
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Empty(t, h.translator.calls)
	assert.Contains(t, run.Snapshot().Error, "API key not valid")
}

func TestTranslationFailureDiscardsSummary(t *testing.T) {
	h := newHarness()
	h.translator.err = errors.New("quota")

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://youtu.be/xyz789",
		Language: french(t),
	})
	var trErr *types.TranslationError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "fr", trErr.Language)

	snap := run.Snapshot()
	assert.Equal(t, types.StateError, snap.State)
	assert.Empty(t, snap.Summary)
	assert.Contains(t, snap.Error, "summary not shown")

	_, err = h.store.Load(context.Background(), run.ID())
	assert.ErrorIs(t, err, artifacts.ErrNotFound)
}

func TestStagesRequireOrder(t *testing.T) {
	h := newHarness()
	run := h.runner.NewRun()
	ctx := context.Background()

	assert.ErrorIs(t, run.FetchTranscript(ctx), ErrInvalidTransition)
	assert.ErrorIs(t, run.Summarize(ctx, types.DifficultySimple), ErrInvalidTransition)
	assert.ErrorIs(t, run.Translate(ctx, types.DefaultLanguage), ErrInvalidTransition)
	assert.Equal(t, types.StateIdle, run.State())

	require.NoError(t, run.SubmitURL("https://youtu.be/xyz789"))
	assert.ErrorIs(t, run.SubmitURL("https://youtu.be/other"), ErrInvalidTransition)
	assert.ErrorIs(t, run.Translate(ctx, types.DefaultLanguage), ErrInvalidTransition)

	require.NoError(t, run.FetchTranscript(ctx))
	assert.Equal(t, types.StateTranscriptReady, run.State())
	require.NoError(t, run.Summarize(ctx, types.DifficultySimple))
	assert.Equal(t, types.StateSummaryReady, run.State())
	assert.Equal(t, "- point", run.Snapshot().Summary)
	require.NoError(t, run.Translate(ctx, types.DefaultLanguage))

	assert.ErrorIs(t, run.FetchTranscript(ctx), ErrInvalidTransition)
	assert.Len(t, h.fetcher.calls, 1)
}

func TestErrorIsTerminal(t *testing.T) {
	h := newHarness()
	run := h.runner.NewRun()
	require.Error(t, run.SubmitURL("not a url"))

	assert.ErrorIs(t, run.FetchTranscript(context.Background()), ErrInvalidTransition)
	assert.Empty(t, h.fetcher.calls)
}

func TestRunsAreIsolated(t *testing.T) {
	h := newHarness()
	a := h.runner.NewRun()
	b := h.runner.NewRun()

	assert.NotEqual(t, a.ID(), b.ID())
	require.NoError(t, a.SubmitURL("https://youtu.be/aaa"))
	require.Error(t, b.SubmitURL("https://example.com"))

	assert.Equal(t, types.StateIdentifierExtracted, a.State())
	assert.Equal(t, types.StateError, b.State())
	assert.Nil(t, a.Err())
}

func TestPublishFailureDoesNotChangeOutcome(t *testing.T) {
	h := newHarness()
	h.publisher.err = errors.New("brokers down")

	run, err := h.runner.Summarize(context.Background(), types.Request{
		URL:      "https://youtu.be/xyz789",
		Language: french(t),
	})
	require.NoError(t, err)
	assert.Equal(t, types.StateTranslatedReady, run.State())
}

func TestLogIsBounded(t *testing.T) {
	h := newHarness()
	run := h.runner.NewRun()
	for i := 0; i < maxLogs+10; i++ {
		run.addLog(fmt.Sprintf("line %d", i))
	}

	logs := run.Snapshot().Logs
	require.Len(t, logs, maxLogs)
	assert.Equal(t, "line 10", logs[0].Message)
	assert.True(t, strings.HasSuffix(logs[len(logs)-1].Message, fmt.Sprint(maxLogs+9)))
}

func TestSnapshotWhileStageInFlight(t *testing.T) {
	h := newHarness()
	block := make(chan struct{})
	started := make(chan struct{})
	h.runner.deps.Transcripts = fetchFunc(func(ctx context.Context, id types.VideoID) (types.Transcript, error) {
		close(started)
		<-block
		return types.Transcript{{Text: "x"}}, nil
	})

	run := h.runner.NewRun()
	require.NoError(t, run.SubmitURL("https://youtu.be/xyz789"))

	done := make(chan error)
	go func() { done <- run.FetchTranscript(context.Background()) }()

	<-started
	assert.Equal(t, types.StateIdentifierExtracted, run.Snapshot().State)
	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, types.StateTranscriptReady, run.State())
}

type fetchFunc func(ctx context.Context, id types.VideoID) (types.Transcript, error)

func (f fetchFunc) Fetch(ctx context.Context, id types.VideoID) (types.Transcript, error) {
	return f(ctx, id)
}
