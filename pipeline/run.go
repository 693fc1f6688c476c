package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tubenotes/summarizer"
	"tubenotes/types"
	"tubenotes/youtube"
)

// ErrInvalidTransition is returned when an action is not allowed in the current state
var ErrInvalidTransition = errors.New("invalid state transition")

// Run is one pass through the pipeline. Stage methods are serialised;
// Snapshot may be called concurrently with a stage in flight.
type Run struct {
	id     string
	runner *Runner

	stage sync.Mutex // held for the duration of a stage

	mu         sync.RWMutex
	state      types.State
	url        string
	videoID    types.VideoID
	transcript string
	difficulty types.Difficulty
	language   types.Language
	summary    string
	translated string
	err        error
	logs       []types.LogEntry
}

func (r *Run) ID() string { return r.id }

func (r *Run) State() types.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Err returns the error that moved the run into StateError
func (r *Run) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// SubmitURL moves Idle → AwaitingInput → IdentifierExtracted, or to Error when
// the URL has no supported shape.
func (r *Run) SubmitURL(rawURL string) error {
	r.stage.Lock()
	defer r.stage.Unlock()

	if err := r.require(types.StateIdle); err != nil {
		return err
	}
	r.mu.Lock()
	r.url = rawURL
	r.mu.Unlock()
	r.transition(types.StateAwaitingInput, "Received URL")

	id, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return r.fail(context.Background(), &types.URLParseError{URL: rawURL})
	}

	r.mu.Lock()
	r.videoID = id
	r.mu.Unlock()
	r.transition(types.StateIdentifierExtracted, fmt.Sprintf("Extracted video id %s", id))
	return nil
}

// FetchTranscript moves IdentifierExtracted → TranscriptReady
func (r *Run) FetchTranscript(ctx context.Context) error {
	r.stage.Lock()
	defer r.stage.Unlock()

	if err := r.require(types.StateIdentifierExtracted); err != nil {
		return err
	}
	id := r.snapshotVideoID()
	r.addLog(fmt.Sprintf("Fetching transcript for %s...", id))

	transcript, err := r.runner.deps.Transcripts.Fetch(ctx, id)
	if err != nil {
		return r.fail(ctx, &types.TranscriptError{VideoID: id, Err: err})
	}
	text := transcript.Text()

	r.mu.Lock()
	r.transcript = text
	r.mu.Unlock()
	r.transition(types.StateTranscriptReady,
		fmt.Sprintf("Transcript ready (%d segments, %d characters)", len(transcript), len(text)))
	return nil
}

// Summarize moves TranscriptReady → SummaryReady
func (r *Run) Summarize(ctx context.Context, difficulty types.Difficulty) error {
	r.stage.Lock()
	defer r.stage.Unlock()

	if err := r.require(types.StateTranscriptReady); err != nil {
		return err
	}
	r.mu.Lock()
	r.difficulty = difficulty
	transcript := r.transcript
	r.mu.Unlock()

	level := string(difficulty)
	if level == "" {
		level = "default"
	}
	r.addLog(fmt.Sprintf("Generating %s summary...", level))

	summary, err := summarizer.Summarize(ctx, r.runner.deps.Generator, transcript, summarizer.BuildPrompt(difficulty))
	if err != nil {
		return r.fail(ctx, &types.GenerationError{Err: err})
	}

	r.mu.Lock()
	r.summary = summary
	r.mu.Unlock()
	r.transition(types.StateSummaryReady, fmt.Sprintf("Summary ready (%d characters)", len(summary)))
	return nil
}

// Translate moves SummaryReady → TranslatedReady. On failure the untranslated
// summary is discarded and the run ends in Error.
func (r *Run) Translate(ctx context.Context, lang types.Language) error {
	r.stage.Lock()
	defer r.stage.Unlock()

	if err := r.require(types.StateSummaryReady); err != nil {
		return err
	}
	r.mu.Lock()
	r.language = lang
	summary := r.summary
	r.mu.Unlock()
	r.addLog(fmt.Sprintf("Translating summary to %s (%s)...", lang.Name, lang.Code))

	translated, err := r.runner.deps.Translator.Translate(ctx, summary, lang.Code)
	if err != nil {
		r.mu.Lock()
		r.summary = ""
		r.mu.Unlock()
		return r.fail(ctx, &types.TranslationError{Language: lang.Code, Err: err})
	}

	r.mu.Lock()
	r.translated = translated
	r.mu.Unlock()
	r.transition(types.StateTranslatedReady, "Translation ready")

	r.runner.saveArtifact(ctx, r.id, types.NewArtifact(translated))
	r.runner.publish(ctx, r.event())
	return nil
}

// Execute runs the three network stages in order, halting at the first failure
func (r *Run) Execute(ctx context.Context, opts Options) error {
	if err := r.FetchTranscript(ctx); err != nil {
		return err
	}
	if err := r.Summarize(ctx, opts.Difficulty); err != nil {
		return err
	}
	return r.Translate(ctx, opts.Language)
}

// Snapshot returns a copy of the run for display
func (r *Run) Snapshot() types.RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := types.RunStatus{
		ID:         r.id,
		State:      r.state,
		URL:        r.url,
		VideoID:    r.videoID,
		Difficulty: r.difficulty,
		Language:   r.language.Code,
		Logs:       append([]types.LogEntry{}, r.logs...),
	}
	if r.videoID != "" {
		status.ThumbnailURL = youtube.ThumbnailURL(r.videoID)
	}
	switch r.state {
	case types.StateTranslatedReady:
		status.Summary = r.translated
	case types.StateSummaryReady:
		status.Summary = r.summary
	}
	if r.err != nil {
		status.Error = r.err.Error()
	}
	return status
}

// Artifact returns the downloadable export once the run is TranslatedReady
func (r *Run) Artifact() (types.Artifact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state != types.StateTranslatedReady {
		return types.Artifact{}, false
	}
	return types.NewArtifact(r.translated), true
}

func (r *Run) require(want types.State) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state != want {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidTransition, r.state, want)
	}
	return nil
}

func (r *Run) snapshotVideoID() types.VideoID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.videoID
}

func (r *Run) transition(to types.State, message string) {
	r.mu.Lock()
	r.state = to
	r.appendLogLocked(message)
	r.mu.Unlock()

	r.runner.deps.Logger.Info(message, slog.String("run_id", r.id), slog.String("state", string(to)))
}

// fail moves the run to Error, publishes the outcome and returns err
func (r *Run) fail(ctx context.Context, err error) error {
	r.mu.Lock()
	r.state = types.StateError
	r.err = err
	r.appendLogLocked(fmt.Sprintf("Error: %v", err))
	r.mu.Unlock()

	r.runner.deps.Logger.Warn("run failed", slog.String("run_id", r.id), slog.Any("err", err))
	r.runner.publish(ctx, r.event())
	return err
}

func (r *Run) addLog(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLogLocked(message)
}

// appendLogLocked keeps the last maxLogs entries; callers hold mu
func (r *Run) appendLogLocked(message string) {
	r.logs = append(r.logs, types.LogEntry{Timestamp: r.runner.now(), Message: message})
	if len(r.logs) > maxLogs {
		r.logs = r.logs[len(r.logs)-maxLogs:]
	}
}

func (r *Run) event() types.RunEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev := types.RunEvent{
		RunID:        r.id,
		VideoID:      r.videoID,
		State:        r.state,
		Language:     r.language.Code,
		Difficulty:   r.difficulty,
		SummaryChars: len(r.translated),
		CompletedAt:  r.runner.now(),
	}
	if r.err != nil {
		ev.Error = r.err.Error()
	}
	return ev
}
