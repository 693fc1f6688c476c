package tui

import (
	"fmt"
	"strings"

	"tubenotes/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n\n")

	switch m.Screen {
	case ScreenURL:
		b.WriteString(TextURLPrompt)
		b.WriteString("\n")
		b.WriteString(HighlightStyle.Render("> " + m.Input))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterURL))
	case ScreenOptions:
		b.WriteString(m.viewOptions())
		b.WriteString(InfoStyle.Render(TextFooterOptions))
	case ScreenRunning:
		b.WriteString(m.getStateText())
		b.WriteString("\n\n")
		b.WriteString(m.viewLogs())
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	case ScreenResult:
		b.WriteString(m.viewResult())
	}

	return b.String()
}

func (m Model) viewOptions() string {
	var b strings.Builder

	b.WriteString(InfoStyle.Render("🖼  " + m.Status.ThumbnailURL))
	b.WriteString("\n\n")

	b.WriteString(TextLanguageLabel)
	b.WriteString("\n")
	for i, lang := range types.Languages {
		if i == m.Language {
			b.WriteString(SelectedStyle.Render("> " + lang.Name))
		} else {
			b.WriteString("  " + lang.Name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(TextDifficulty)
	b.WriteString("\n")
	levels := make([]string, len(types.Difficulties))
	for i, d := range types.Difficulties {
		if i == m.Level {
			levels[i] = HighlightStyle.Render(string(d))
		} else {
			levels[i] = string(d)
		}
	}
	b.WriteString(strings.Join(levels, "  "))
	b.WriteString("\n\n")
	return b.String()
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.Stage {
	case StageTranscript:
		return StatusStyle.Render("⏳ Fetching transcript...")
	case StageSummary:
		return StatusStyle.Render(fmt.Sprintf("✍️  Generating %s summary...", m.SelectedDifficulty()))
	case StageTranslation:
		return StatusStyle.Render(fmt.Sprintf("🌐 Translating to %s...", m.SelectedLanguage().Name))
	default:
		return ""
	}
}

func (m Model) viewLogs() string {
	if len(m.Status.Logs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
	b.WriteString("\n")
	for _, entry := range m.Status.Logs {
		line := fmt.Sprintf("   [%s] %s", entry.Timestamp.Format("15:04:05"), entry.Message)
		b.WriteString(InfoStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	if m.Status.State != types.StateTranslatedReady {
		msg := m.Status.Error
		if msg == "" {
			msg = "Unknown error"
		}
		b.WriteString(ErrorStyle.Render("❌ " + msg))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterFailed))
		return b.String()
	}

	b.WriteString(HighlightStyle.Render("✅ Summary"))
	b.WriteString("\n\n")
	b.WriteString(BoxStyle.Render(m.Status.Summary))
	b.WriteString("\n\n")

	switch {
	case m.SaveErr != nil:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Failed to save: %v", m.SaveErr)))
		b.WriteString("\n\n")
	case m.SavedPath != "":
		b.WriteString(StatusStyle.Render("💾 Saved to " + m.SavedPath))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render(TextFooterResult))
	return b.String()
}
