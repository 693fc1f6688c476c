package types

import "time"

// State represents the pipeline state machine
type State string

const (
	StateIdle                State = "idle"
	StateAwaitingInput       State = "awaiting_input"
	StateIdentifierExtracted State = "identifier_extracted"
	StateTranscriptReady     State = "transcript_ready"
	StateSummaryReady        State = "summary_ready"
	StateTranslatedReady     State = "translated_ready"
	StateError               State = "error"
)

// Terminal reports whether no further transition can leave s
func (s State) Terminal() bool {
	return s == StateTranslatedReady || s == StateError
}

// LogEntry represents a single log line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Request carries the three user selections of one run
type Request struct {
	URL        string     `json:"url"`
	Difficulty Difficulty `json:"difficulty"`
	Language   Language   `json:"language"`
}

// RunStatus is a snapshot of one pipeline run
type RunStatus struct {
	ID           string     `json:"id"`
	State        State      `json:"state"`
	URL          string     `json:"url,omitempty"`
	VideoID      VideoID    `json:"video_id,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	Language     string     `json:"language,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Logs         []LogEntry `json:"logs"`
	Error        string     `json:"error,omitempty"`
}

// RunEvent is published once a run reaches a terminal state
type RunEvent struct {
	RunID        string     `json:"run_id"`
	VideoID      VideoID    `json:"video_id,omitempty"`
	State        State      `json:"state"`
	Language     string     `json:"language,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	SummaryChars int        `json:"summary_chars"`
	Error        string     `json:"error,omitempty"`
	CompletedAt  time.Time  `json:"completed_at"`
}

const (
	ArtifactFilename    = "summary.txt"
	ArtifactContentType = "text/plain"
)

// Artifact is the downloadable plain-text export of a finished run
type Artifact struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// NewArtifact wraps body with the fixed filename and MIME type
func NewArtifact(body string) Artifact {
	return Artifact{
		Filename:    ArtifactFilename,
		ContentType: ArtifactContentType,
		Body:        body,
	}
}
