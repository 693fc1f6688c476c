package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tubenotes/artifacts"
	"tubenotes/pipeline"
	"tubenotes/types"
)

// runStage executes one stage of run off the UI goroutine
func runStage(ctx context.Context, run *pipeline.Run, stage Stage, difficulty types.Difficulty, lang types.Language) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch stage {
		case StageTranscript:
			err = run.FetchTranscript(ctx)
		case StageSummary:
			err = run.Summarize(ctx, difficulty)
		case StageTranslation:
			err = run.Translate(ctx, lang)
		}
		return StageDoneMsg{Stage: stage, Err: err}
	}
}

// saveArtifact writes the finished summary into dir
func saveArtifact(dir string, a types.Artifact) tea.Cmd {
	return func() tea.Msg {
		path, err := artifacts.WriteFile(dir, a)
		return SavedMsg{Path: path, Err: err}
	}
}
