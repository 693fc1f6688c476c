package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tubenotes/artifacts"
	"tubenotes/events"
	"tubenotes/summarizer"
	"tubenotes/translation"
	"tubenotes/types"
)

const (
	maxLogs        = 50
	publishTimeout = 5 * time.Second
)

// TranscriptFetcher returns the caption segments of a video
type TranscriptFetcher interface {
	Fetch(ctx context.Context, id types.VideoID) (types.Transcript, error)
}

// Deps are the collaborators shared read-only by every run.
// Artifacts and Events are optional.
type Deps struct {
	Transcripts TranscriptFetcher
	Generator   summarizer.Generator
	Translator  translation.Translator
	Artifacts   artifacts.Store
	Events      events.Publisher
	Logger      *slog.Logger
}

// Options are the user selections applied by Execute
type Options struct {
	Difficulty types.Difficulty
	Language   types.Language
}

// Runner creates isolated runs over one set of collaborators
type Runner struct {
	deps Deps
	now  func() time.Time
}

func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With("component", "pipeline")
	return &Runner{deps: deps, now: time.Now}
}

// NewRun returns a fresh run in the Idle state
func (r *Runner) NewRun() *Run {
	return &Run{
		id:     uuid.NewString(),
		runner: r,
		state:  types.StateIdle,
		logs:   make([]types.LogEntry, 0, maxLogs),
	}
}

// Summarize submits req.URL and executes every stage on a new run. The run
// is returned in its terminal state together with the first stage error.
func (r *Runner) Summarize(ctx context.Context, req types.Request) (*Run, error) {
	run := r.NewRun()
	if err := run.SubmitURL(req.URL); err != nil {
		return run, err
	}
	err := run.Execute(ctx, Options{Difficulty: req.Difficulty, Language: req.Language})
	return run, err
}

// publish announces a terminal run. Failures are logged only.
func (r *Runner) publish(ctx context.Context, ev types.RunEvent) {
	if r.deps.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := r.deps.Events.Publish(ctx, ev); err != nil {
		r.deps.Logger.Warn("failed to publish run event", slog.String("run_id", ev.RunID), slog.Any("err", err))
	}
}

// saveArtifact stores the export of a finished run. Failures are logged only.
func (r *Runner) saveArtifact(ctx context.Context, runID string, a types.Artifact) {
	if r.deps.Artifacts == nil {
		return
	}
	if err := r.deps.Artifacts.Save(ctx, runID, a); err != nil {
		r.deps.Logger.Warn("failed to save artifact", slog.String("run_id", runID), slog.Any("err", err))
	}
}
