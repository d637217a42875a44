package ai

import "context"

// TextGenerator is the text-generation capability behind the analysis tasks.
// The model may throw or return malformed text; callers run the raw output
// through the lenient decoder.
type TextGenerator interface {
	Generate(ctx context.Context, task Task, input string) (string, error)
}

// SpeechToText converts an audio payload into transcript text.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}
