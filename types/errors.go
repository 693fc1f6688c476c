package types

import "fmt"

// InvalidURLMessage is shown to the user when a URL has no supported shape
const InvalidURLMessage = "Invalid URL."

// URLParseError reports a URL that matches neither supported shape
type URLParseError struct {
	URL string
}

func (e *URLParseError) Error() string { return InvalidURLMessage }

// TranscriptError wraps any failure of the transcript service
type TranscriptError struct {
	VideoID VideoID
	Err     error
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("An error occurred while fetching the transcript: %v", e.Err)
}

func (e *TranscriptError) Unwrap() error { return e.Err }

// GenerationError wraps any failure of the generation service
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("An error occurred while generating the summary: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TranslationError wraps any failure of the translation service.
// The untranslated summary is not kept.
type TranslationError struct {
	Language string
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("An error occurred while translating the summary to %q (summary not shown): %v", e.Language, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }
