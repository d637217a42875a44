package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"echo-journal/api/dto"
	"echo-journal/logger"
	"echo-journal/services"
	"echo-journal/storage"
)

// EntryAudioURLHandler godoc
// @Summary      Get a time-limited playback URL for an entry's audio
// @Tags         entries
// @Security     BearerAuth
// @Param        id  path  string  true  "entry ObjectID"
// @Produce      json
// @Success      200  {object}  dto.AudioURLResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /entries/{id}/audio-url [get]
func EntryAudioURLHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		url, err := entrySvc.AudioURL(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "entry_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_sign_audio_url"})
			return
		}

		c.JSON(http.StatusOK, dto.AudioURLResponseDTO{URL: url})
	}
}

// StreamAudioHandler godoc
// @Summary      Stream a stored recording
// @Description  The token query parameter is a signed grant issued by the audio-url endpoint; no Authorization header is needed.
// @Tags         entries
// @Param        token  query  string  true  "signed playback token"
// @Produce      octet-stream
// @Success      200  {file}    file
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /audio/stream [get]
func StreamAudioHandler(audioStore storage.AudioStore, signer *storage.AudioURLSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "missing_token"})
			return
		}

		key, err := signer.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "invalid_or_expired_token"})
			return
		}

		c.Header("Content-Type", contentTypeForKey(key))
		if _, err := audioStore.Download(c.Request.Context(), key, c.Writer); err != nil {
			// Headers may already be written; log and bail.
			logger.Log.Errorf("audio stream failed for key %s: %v", key, err)
			c.Status(http.StatusNotFound)
			return
		}
	}
}

func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	default:
		return "audio/webm"
	}
}
