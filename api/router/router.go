package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"echo-journal/api/handlers"
	"echo-journal/api/middleware"
	"echo-journal/auth"
	"echo-journal/config"
	"echo-journal/db"
	"echo-journal/services"
	"echo-journal/storage"
)

// Deps carries everything the HTTP surface needs. All services are built in
// main so the router stays free of construction logic.
type Deps struct {
	JWT        *auth.JWTManager
	Recordings *services.RecordingService
	Backfill   *services.BackfillService
	Entries    *services.EntryService
	Audio      storage.AudioStore
	Signer     *storage.AudioURLSigner
}

func New(cfg config.AppConfig, deps Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestLoggingMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		// Playback is authorized by the signed token itself.
		api.GET("/audio/stream", handlers.StreamAudioHandler(deps.Audio, deps.Signer))

		authed := api.Group("", middleware.UserAuthMiddleware(deps.JWT))
		{
			authed.POST("/recordings", handlers.CreateRecordingHandler(deps.Recordings, cfg.Audio.MaxUploadBytes))

			authed.GET("/entries", handlers.ListEntriesHandler(deps.Entries))
			authed.GET("/entries/:id", handlers.GetEntryHandler(deps.Entries))
			authed.PATCH("/entries/:id", handlers.UpdateEntryHandler(deps.Entries))
			authed.DELETE("/entries/:id", handlers.DeleteEntryHandler(deps.Entries))
			authed.GET("/entries/:id/audio-url", handlers.EntryAudioURLHandler(deps.Entries))

			authed.GET("/mood/history", handlers.MoodHistoryHandler(deps.Entries))

			authed.POST("/backfill/ideas", handlers.BackfillIdeasHandler(deps.Backfill))
			authed.POST("/backfill/insights", handlers.BackfillInsightsHandler(deps.Backfill))
		}

		admin := api.Group("/admin", middleware.AdminAuthMiddleware(deps.JWT))
		{
			admin.POST("/backfill/:kind", handlers.AdminBackfillHandler(deps.Backfill))
		}
	}

	return r
}
