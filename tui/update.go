package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tubenotes/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case StageDoneMsg:
		return m.handleStageDone(msg)
	case SavedMsg:
		m.SavedPath = msg.Path
		m.SaveErr = msg.Err
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.Screen {
	case ScreenURL:
		return m.handleURLKey(msg)
	case ScreenOptions:
		return m.handleOptionsKey(msg)
	case ScreenResult:
		return m.handleResultKey(msg)
	}
	return m, nil
}

func (m Model) handleURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitURL()
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

// submitURL starts a fresh run. An unparseable URL ends it at once and shows the result view.
func (m Model) submitURL() (tea.Model, tea.Cmd) {
	m.Run = m.runner.NewRun()
	err := m.Run.SubmitURL(m.Input)
	m = m.refresh()
	if err != nil {
		m.Screen = ScreenResult
		return m, nil
	}
	m.Screen = ScreenOptions
	return m, nil
}

func (m Model) handleOptionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Language > 0 {
			m.Language--
		}
	case "down", "j":
		if m.Language < len(types.Languages)-1 {
			m.Language++
		}
	case "left", "h":
		if m.Level > 0 {
			m.Level--
		}
	case "right", "l":
		if m.Level < len(types.Difficulties)-1 {
			m.Level++
		}
	case "esc":
		return m.reset(), nil
	case "enter":
		m.Screen = ScreenRunning
		m.Stage = StageTranscript
		return m, m.stageCmd()
	}
	return m, nil
}

// handleStageDone advances to the next stage or stops at the first failure
func (m Model) handleStageDone(msg StageDoneMsg) (tea.Model, tea.Cmd) {
	m = m.refresh()
	if msg.Err != nil || msg.Stage == StageTranslation {
		m.Screen = ScreenResult
		return m, nil
	}
	m.Stage = msg.Stage + 1
	return m, m.stageCmd()
}

func (m Model) stageCmd() tea.Cmd {
	return runStage(m.ctx, m.Run, m.Stage, m.SelectedDifficulty(), m.SelectedLanguage())
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m.reset(), nil
	case "s":
		if artifact, ok := m.Run.Artifact(); ok {
			return m, saveArtifact(m.outDir, artifact)
		}
	}
	return m, nil
}

// reset discards the current run and returns to URL entry, keeping the selections
func (m Model) reset() Model {
	m.Screen = ScreenURL
	m.Input = ""
	m.Run = nil
	m.Status = types.RunStatus{}
	m.SavedPath = ""
	m.SaveErr = nil
	return m
}
