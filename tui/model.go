package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tubenotes/pipeline"
	"tubenotes/types"
)

// Screen is the view currently shown
type Screen int

const (
	ScreenURL Screen = iota
	ScreenOptions
	ScreenRunning
	ScreenResult
)

// Stage names the network stage in flight
type Stage int

const (
	StageTranscript Stage = iota
	StageSummary
	StageTranslation
)

func (s Stage) String() string {
	switch s {
	case StageTranscript:
		return "transcript"
	case StageSummary:
		return "summary"
	case StageTranslation:
		return "translation"
	default:
		return "unknown"
	}
}

// Model drives one pipeline run at a time
type Model struct {
	ctx    context.Context
	runner *pipeline.Runner
	outDir string

	Screen   Screen
	Input    string
	Run      *pipeline.Run
	Status   types.RunStatus
	Language int
	Level    int
	Stage    Stage

	SavedPath string
	SaveErr   error
}

// NewModel creates a model whose runs use runner and whose exports go to outDir
func NewModel(ctx context.Context, runner *pipeline.Runner, outDir string) Model {
	return Model{
		ctx:    ctx,
		runner: runner,
		outDir: outDir,
		Screen: ScreenURL,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// SelectedLanguage returns the highlighted entry of the language table
func (m Model) SelectedLanguage() types.Language {
	return types.Languages[m.Language]
}

// SelectedDifficulty returns the highlighted difficulty level
func (m Model) SelectedDifficulty() types.Difficulty {
	return types.Difficulties[m.Level]
}

func (m Model) refresh() Model {
	if m.Run != nil {
		m.Status = m.Run.Snapshot()
	}
	return m
}
