package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"echo-journal/api/dto"
	"echo-journal/logger"
	"echo-journal/services"
)

// BackfillIdeasHandler godoc
// @Summary      Backfill ideas for the caller's entries
// @Description  Runs idea extraction over every existing entry that has no ideas yet. Entries are processed one by one; failures are skipped.
// @Tags         backfill
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  services.BackfillSummary
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /backfill/ideas [post]
func BackfillIdeasHandler(backfillSvc *services.BackfillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		summary, err := backfillSvc.BackfillIdeas(c.Request.Context(), userID)
		if err != nil {
			logger.Log.Errorf("idea backfill failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_backfill_ideas"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// BackfillInsightsHandler godoc
// @Summary      Backfill insights for the caller's entries
// @Tags         backfill
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  services.BackfillSummary
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /backfill/insights [post]
func BackfillInsightsHandler(backfillSvc *services.BackfillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		summary, err := backfillSvc.BackfillInsights(c.Request.Context(), userID)
		if err != nil {
			logger.Log.Errorf("insight backfill failed for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_backfill_insights"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

// AdminBackfillHandler godoc
// @Summary      Backfill one derivation kind for every user
// @Description  Administrative batch: runs the ideas or insights backfill across all users with entries.
// @Tags         admin
// @Security     BearerAuth
// @Param        kind  path  string  true  "ideas or insights"
// @Produce      json
// @Success      200  {object}  services.BackfillSummary
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /admin/backfill/{kind} [post]
func AdminBackfillHandler(backfillSvc *services.BackfillService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.Param("kind")
		if kind != "ideas" && kind != "insights" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "unknown_backfill_kind"})
			return
		}

		summary, err := backfillSvc.BackfillAllUsers(c.Request.Context(), kind)
		if err != nil {
			logger.Log.Errorf("admin backfill (%s) failed: %v", kind, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_backfill"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
