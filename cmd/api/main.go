package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"echo-journal/ai"
	"echo-journal/api/router"
	"echo-journal/auth"
	"echo-journal/config"
	"echo-journal/db"
	"echo-journal/eventbus"
	"echo-journal/logger"
	"echo-journal/quota"
	"echo-journal/repositories"
	"echo-journal/services"
	"echo-journal/storage"
)

// @title           Echo Journal API
// @version         1.0
// @description     Voice journaling API: recordings in, structured entries with mood, ideas and insights out.
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB: ", err)
	}

	gemini, err := ai.NewGeminiClient(ctx)
	if err != nil {
		log.Fatal("failed to initialize Gemini client: ", err)
	}

	audioStore, err := storage.NewGridFSAudioStore(db.Database())
	if err != nil {
		log.Fatal("failed to initialize audio storage: ", err)
	}

	ttl := time.Duration(cfg.AudioURLTTL) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	signer, err := storage.NewAudioURLSignerFromEnv(ttl)
	if err != nil {
		log.Fatal("failed to initialize audio URL signer: ", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal("failed to initialize JWT manager: ", err)
	}

	var bus eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kafkaBus, err := eventbus.NewKafkaPublisher(cfg.Kafka.Brokers)
		if err != nil {
			// Event publishing is optional; run without it.
			logger.Log.Warnf("kafka unavailable, events disabled: %v", err)
		} else {
			bus = kafkaBus
		}
	}
	defer bus.Close()

	entryRepo := repositories.NewEntryRepository(db.Database())
	moodRepo := repositories.NewMoodHistoryRepository(db.Database())
	ideaRepo := repositories.NewIdeaRepository(db.Database())
	insightRepo := repositories.NewInsightRepository(db.Database())
	userRepo := repositories.NewUserRepository(db.Database())

	gate := quota.NewMonthlyGate(entryRepo, cfg.Quota.FreeMonthlyLimit)
	limiter := quota.NewLLMRateLimiterFromConfig(cfg)

	recordingSvc := services.NewRecordingService(
		gate, userRepo, audioStore, gemini, gemini,
		entryRepo, moodRepo, ideaRepo, insightRepo, bus,
	)
	backfillSvc := services.NewBackfillService(entryRepo, ideaRepo, insightRepo, gemini, limiter)
	entrySvc := services.NewEntryService(entryRepo, moodRepo, ideaRepo, insightRepo, audioStore, signer, bus)

	r := router.New(cfg, router.Deps{
		JWT:        jwtManager,
		Recordings: recordingSvc,
		Backfill:   backfillSvc,
		Entries:    entrySvc,
		Audio:      audioStore,
		Signer:     signer,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	if err := http.ListenAndServe(":8080", corsHandler.Handler(r)); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
