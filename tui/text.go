package tui

// UI Text Constants
const (
	TextTitle = "📺 YouTube Video Summarizer"

	TextURLPrompt     = "Enter the YouTube video URL:"
	TextLanguageLabel = "Select the language for the summary:"
	TextDifficulty    = "Select the difficulty level of the summary:"

	TextFooterURL     = "Enter to continue | Ctrl+C to quit"
	TextFooterOptions = "↑/↓ language | ←/→ difficulty | Enter to summarize | Esc to go back | Ctrl+C to quit"
	TextFooterRunning = "Working... | Ctrl+C to quit"
	TextFooterResult  = "Press 's' to save summary.txt | 'r' to start over | 'q' to quit"
	TextFooterFailed  = "Press 'r' to start over | 'q' to quit"
)
