package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/linkswipe/backend/internal/config"
	"github.com/linkswipe/backend/internal/handlers"
	"github.com/linkswipe/backend/internal/logger"
	appMiddleware "github.com/linkswipe/backend/internal/middleware"
	"github.com/linkswipe/backend/internal/services"
	"github.com/linkswipe/backend/web"
)

func main() {
	// .env is optional; in production the platform supplies the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("linkswipe-api", false)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init("linkswipe-api", cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Profile store: Mongo when configured, in-memory otherwise (local dev).
	var profiles services.ProfileStore
	if cfg.MongoURI != "" {
		mongoStore, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoStore.Close(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
		profiles = mongoStore
	} else {
		log.Warn().Msg("MONGO_URI not set, using in-memory profile store")
		profiles = services.NewProfileService()
	}

	// Photo store.
	var photos services.PhotoStore
	switch cfg.StorageBackend {
	case "firebase":
		photos, err = services.NewFirebasePhotoStore(ctx, cfg.StorageBucket, cfg.FirebaseCredentialsJSON)
		if err != nil {
			log.Fatal().Err(err).Msg("firebase storage init failed")
		}
	case "local":
		photos = services.NewLocalPhotoStore(cfg.UploadDir)
	}

	// Optional feed cache.
	var feedCache *services.FeedCache
	if cfg.RedisAddr != "" {
		feedCache = services.NewFeedCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.FeedCacheTTL)
		defer feedCache.Close()
	}

	// Optional submitter notifications.
	var mailer *services.SendGridMailer
	if cfg.SendGridAPIKey != "" {
		mailer = services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail)
	}

	if cfg.GumroadWebhookSecret == "" {
		log.Warn().Msg("GUMROAD_WEBHOOK_SECRET not set, webhook payloads are accepted without signature verification")
	}

	submissionHandler := handlers.NewSubmissionHandler(profiles, photos, mailer, cfg.AllowedLinkDomains, cfg.PaymentPageURL, cfg.MaxUploadSizeMB)
	webhookHandler := handlers.NewWebhookHandler(profiles, feedCache, mailer, cfg.GumroadProductID, cfg.GumroadWebhookSecret)
	galleryHandler := handlers.NewGalleryHandler(profiles, feedCache)
	legalHandler := handlers.NewLegalHandler(web.Legal())
	adminHandler := handlers.NewAdminHandler(profiles, feedCache, mailer, cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTExpiration)
	pageHandler, err := handlers.NewPageHandler(web.Templates())
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appMiddleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Gallery page + assets
	r.Get("/", pageHandler.ServeIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", galleryHandler.ListApproved)
		r.Post("/submit-profile", submissionHandler.SubmitProfile)
		r.Post("/payment-webhook", webhookHandler.HandlePayment)
		r.Get("/legal/{doc}", legalHandler.GetDocument)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))
				r.Get("/profiles", adminHandler.ListProfiles)
				r.Post("/profiles/{profileId}/approve", adminHandler.ApproveProfile)
				r.Delete("/profiles/{profileId}", adminHandler.DeleteProfile)
			})
		})
	})

	// Serve uploaded files when photos live on local disk
	if cfg.StorageBackend == "local" {
		filesDir := http.Dir(cfg.UploadDir)
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesDir)))
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("linkswipe API server starting")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}
}
