package tui

// Messages for the tea program

// StageDoneMsg is sent when one pipeline stage returns
type StageDoneMsg struct {
	Stage Stage
	Err   error
}

// SavedMsg is sent when summary.txt has been written
type SavedMsg struct {
	Path string
	Err  error
}
