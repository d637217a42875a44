package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// AudioStore is the durable object storage boundary for raw recordings.
// Writes are append-only: a key is never overwritten.
type AudioStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
	Download(ctx context.Context, key string, w io.Writer) (int64, error)
	Delete(ctx context.Context, key string) error
}

var audioExtensions = map[string]string{
	"audio/webm": "webm",
	"audio/mpeg": "mp3",
	"audio/mp4":  "m4a",
	"audio/wav":  "wav",
	"audio/ogg":  "ogg",
}

// NewAudioKey generates a collision-free storage key scoped under the
// user's namespace, e.g. "user-123/7d64….webm".
func NewAudioKey(userID, contentType string) string {
	ext, ok := audioExtensions[contentType]
	if !ok {
		ext = "webm"
	}
	return fmt.Sprintf("%s/%s.%s", userID, uuid.NewString(), ext)
}
