package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echo-journal/api/dto"
	"echo-journal/logger"
	"echo-journal/services"
)

// ListEntriesHandler godoc
// @Summary      List the caller's journal entries
// @Tags         entries
// @Security     BearerAuth
// @Param        page       query  int  false  "page number (starts at 1)"
// @Param        page_size  query  int  false  "page size (max 100)"
// @Produce      json
// @Success      200  {array}   models.JournalEntry
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /entries [get]
func ListEntriesHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		entries, err := entrySvc.List(c.Request.Context(), userID, page, pageSize)
		if err != nil {
			logger.Log.Errorf("failed to list entries for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_list_entries"})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// GetEntryHandler godoc
// @Summary      Fetch one entry with its ideas and insights
// @Tags         entries
// @Security     BearerAuth
// @Param        id  path  string  true  "entry ObjectID"
// @Produce      json
// @Success      200  {object}  services.EntryDetail
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /entries/{id} [get]
func GetEntryHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		detail, err := entrySvc.Get(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "entry_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_fetch_entry"})
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

// UpdateEntryHandler godoc
// @Summary      Edit an entry's title or text
// @Description  Manual edits only; mood, ideas and insights are not regenerated.
// @Tags         entries
// @Security     BearerAuth
// @Param        id       path  string                     true  "entry ObjectID"
// @Param        request  body  dto.UpdateEntryRequestDTO  true  "fields to update"
// @Produce      json
// @Success      200  {object}  models.JournalEntry
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /entries/{id} [patch]
func UpdateEntryHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.UpdateEntryRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request_body"})
			return
		}

		entry, err := entrySvc.UpdateText(c.Request.Context(), userID, c.Param("id"), req.EntryTitle, req.CleanedEntry)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "entry_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_update_entry"})
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// DeleteEntryHandler godoc
// @Summary      Delete an entry and everything derived from it
// @Tags         entries
// @Security     BearerAuth
// @Param        id  path  string  true  "entry ObjectID"
// @Produce      json
// @Success      204  {string}  string  "no content"
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /entries/{id} [delete]
func DeleteEntryHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		if err := entrySvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "entry_not_found"})
				return
			}
			logger.Log.Errorf("failed to delete entry for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_delete_entry"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// MoodHistoryHandler godoc
// @Summary      Mood history for trend charts
// @Tags         mood
// @Security     BearerAuth
// @Param        days  query  int  false  "window in days (default 30)"
// @Produce      json
// @Success      200  {array}   models.MoodPoint
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /mood/history [get]
func MoodHistoryHandler(entrySvc *services.EntryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
		if days <= 0 {
			days = 30
		}

		points, err := entrySvc.MoodHistory(c.Request.Context(), userID, daysAgo(days))
		if err != nil {
			logger.Log.Errorf("failed to fetch mood history for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_fetch_mood_history"})
			return
		}

		c.JSON(http.StatusOK, points)
	}
}
