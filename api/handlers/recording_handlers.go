package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echo-journal/api/dto"
	"echo-journal/logger"
	"echo-journal/services"
)

// CreateRecordingHandler godoc
// @Summary      Submit a voice recording
// @Description  Uploads an audio file, transcribes it and turns it into a structured journal entry with mood, ideas and insights.
// @Tags         recordings
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Param        audio             formData  file  true   "audio payload (webm/mp3/wav/m4a/ogg)"
// @Param        duration_seconds  formData  int   false  "client-measured playback length"
// @Produce      json
// @Success      200  {object}  services.ProcessResult
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      402  {object}  dto.ErrorResponseDTO
// @Failure      413  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /recordings [post]
func CreateRecordingHandler(recordingSvc *services.RecordingService, maxUploadBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_audio_file"})
			return
		}
		if maxUploadBytes > 0 && fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: "audio_file_too_large"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unreadable_audio_file"})
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unreadable_audio_file"})
			return
		}

		duration, _ := strconv.Atoi(c.PostForm("duration_seconds"))

		result, err := recordingSvc.Process(c.Request.Context(), services.ProcessInput{
			UserID:          userID,
			Audio:           audio,
			ContentType:     fileHeader.Header.Get("Content-Type"),
			DurationSeconds: duration,
		})
		if err != nil {
			if errors.Is(err, services.ErrQuotaExceeded) {
				c.JSON(http.StatusPaymentRequired, dto.ErrorResponseDTO{Error: services.ErrQuotaExceeded.Error()})
				return
			}
			logger.Log.Errorf("recording processing failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_process_recording"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
