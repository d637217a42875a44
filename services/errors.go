package services

import "errors"

var (
	// ErrQuotaExceeded maps to HTTP 402.
	ErrQuotaExceeded = errors.New("Free tier monthly recording limit reached. Upgrade to continue.")

	// ErrUploadFailed means durable audio storage rejected the write; the
	// submission aborts with nothing persisted and the caller should retry.
	ErrUploadFailed = errors.New("failed to upload audio to storage")

	// ErrEmptyTranscript means speech-to-text succeeded but produced no
	// usable text. Fatal for a live submission.
	ErrEmptyTranscript = errors.New("transcription returned no text")

	// ErrNotFound is returned for entries that do not exist or belong to a
	// different user.
	ErrNotFound = errors.New("not found")
)
